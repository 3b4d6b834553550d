// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"tubevault/internal/library"
	"tubevault/internal/shared"
)

// ExportToCSV converts a playlist and its ordered videos to CSV with columns:
// Position, RemoteID, Title, Channel, Duration, URL
func ExportToCSV(detail *library.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "RemoteID", "Title", "Channel", "Duration", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, video := range detail.Videos {
		record := []string{
			strconv.Itoa(i),
			video.RemoteID(),
			video.Title(),
			video.ChannelName(),
			strconv.Itoa(video.Duration()),
			WatchURL(video.RemoteID()),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist and its ordered videos to Markdown
func ExportToMarkdown(detail *library.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer
	playlist := detail.Playlist

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name()))

	if playlist.Description() != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description()))
	}

	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", playlist.VideoCount()))
	buf.WriteString(fmt.Sprintf("**Total runtime**: %s\n\n", shared.FormatDuration(playlist.TotalDuration())))

	buf.WriteString("## Videos\n\n")
	for i, video := range detail.Videos {
		duration := shared.FormatDuration(video.Duration())
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) - %s [%s]\n",
			i+1, video.Title(), WatchURL(video.RemoteID()), video.ChannelName(), duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist and its ordered videos to plain text
func ExportToText(detail *library.PlaylistDetail) ([]byte, error) {
	var buf bytes.Buffer
	playlist := detail.Playlist

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name()))
	if playlist.Description() != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", playlist.Description()))
	}
	buf.WriteString(fmt.Sprintf("Videos: %d (%s)\n\n", playlist.VideoCount(), shared.FormatDuration(playlist.TotalDuration())))

	for i, video := range detail.Videos {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n",
			i+1, video.Title(), video.ChannelName(), shared.FormatDuration(video.Duration())))
	}

	return buf.Bytes(), nil
}

// exportedVideo is the JSON shape of one playlist entry.
type exportedVideo struct {
	Position int    `json:"position"`
	RemoteID string `json:"remote_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration int    `json:"duration"`
	URL      string `json:"url"`
}

type exportedPlaylist struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	RemoteID      string          `json:"remote_id,omitempty"`
	VideoCount    int             `json:"video_count"`
	TotalDuration int             `json:"total_duration"`
	Videos        []exportedVideo `json:"videos"`
}

// ExportToJSON converts a playlist and its ordered videos to pretty-printed JSON
func ExportToJSON(detail *library.PlaylistDetail) ([]byte, error) {
	playlist := detail.Playlist
	out := exportedPlaylist{
		Name:          playlist.Name(),
		Description:   playlist.Description(),
		RemoteID:      playlist.RemoteID(),
		VideoCount:    playlist.VideoCount(),
		TotalDuration: playlist.TotalDuration(),
		Videos:        make([]exportedVideo, 0, len(detail.Videos)),
	}

	for i, video := range detail.Videos {
		out.Videos = append(out.Videos, exportedVideo{
			Position: i,
			RemoteID: video.RemoteID(),
			Title:    video.Title(),
			Channel:  video.ChannelName(),
			Duration: video.Duration(),
			URL:      WatchURL(video.RemoteID()),
		})
	}

	return shared.MarshalJSON(out, true)
}

// WatchURL builds the canonical watch URL for a remote video id
func WatchURL(remoteID string) string {
	return "https://www.youtube.com/watch?v=" + remoteID
}

// WriteExport renders the playlist in the given format and writes it to path.
//
// Format is one of csv, markdown, txt, json (the default). An empty path
// derives {playlist id}.{ext} in the working directory. Returns the path written.
func WriteExport(detail *library.PlaylistDetail, format, path string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(detail)
		ext = "csv"
	case "markdown":
		data, err = ExportToMarkdown(detail)
		ext = "md"
	case "txt":
		data, err = ExportToText(detail)
		ext = "txt"
	case "json", "":
		data, err = ExportToJSON(detail)
		ext = "json"
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate export: %w", err)
	}

	if path == "" {
		path = fmt.Sprintf("%s.%s", detail.Playlist.ID(), ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
