package formatter

import (
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"tubevault/internal/library"
	"tubevault/internal/models"
	"tubevault/internal/shared"
)

func testDetail(t *testing.T) *library.PlaylistDetail {
	t.Helper()

	playlist := models.NewPlaylist(1, "owner", "PLmix", models.PlaylistMetadata{
		Name:        "Road Trip",
		Description: "Long drives",
	})
	playlist.SetID("playlist-1")
	playlist.SetSummary(2, 3725)

	a := models.NewVideo(1, "owner", "vid0000000a", models.VideoMetadata{
		Title: "Opening Song", Duration: 3600, ChannelName: "Chan A",
	})
	b := models.NewVideo(2, "owner", "vid0000000b", models.VideoMetadata{
		Title: "Closing Song", Duration: 125, ChannelName: "Chan B",
	})

	return &library.PlaylistDetail{Playlist: playlist, Videos: []*models.Video{a, b}}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testDetail(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][0] != "0" || records[1][2] != "Opening Song" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][5] != "https://www.youtube.com/watch?v=vid0000000b" {
		t.Errorf("unexpected url: %q", records[2][5])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(testDetail(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"# Road Trip",
		"**Videos**: 2",
		"**Total runtime**: 1:02:05",
		"1. [Opening Song](https://www.youtube.com/watch?v=vid0000000a) - Chan A [1:00:00]",
		"2. [Closing Song](https://www.youtube.com/watch?v=vid0000000b) - Chan B [2:05]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testDetail(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "Playlist: Road Trip") {
		t.Errorf("text missing playlist name\n%s", out)
	}
	if !strings.Contains(out, "1. Opening Song - Chan A [1:00:00]") {
		t.Errorf("text missing first entry\n%s", out)
	}
}

func TestExportToJSON(t *testing.T) {
	data, err := ExportToJSON(testDetail(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"name": "Road Trip"`, `"video_count": 2`, `"position": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("json missing %q\n%s", want, out)
		}
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes requested format", func(t *testing.T) {
		path := filepath.Join(dir, "out.csv")
		written, err := WriteExport(testDetail(t), "csv", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if written != path {
			t.Errorf("expected %q, got %q", path, written)
		}
	})

	t.Run("defaults to json", func(t *testing.T) {
		path := filepath.Join(dir, "out.json")
		if _, err := WriteExport(testDetail(t), "", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := WriteExport(testDetail(t), "xml", filepath.Join(dir, "out.xml"))
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
