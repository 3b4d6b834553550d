// YouTube Data API v3 [Provider] implementation.
//
// Works with either an API key (public content) or an OAuth token source
// (private playlists). Requests are rate limited client side to stay inside
// the default API quota.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

const defaultYTBaseURL string = "https://www.googleapis.com/youtube/v3"

// playlistPageSize is the maximum item count the API returns per page.
// Only the first page is fetched; longer playlists are truncated.
const playlistPageSize = 50

// YouTubeThumbnail represents one thumbnail rendition in API responses.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeThumbnails holds the renditions the API exposes per resource.
type YouTubeThumbnails struct {
	Default *YouTubeThumbnail `json:"default"`
	Medium  *YouTubeThumbnail `json:"medium"`
	High    *YouTubeThumbnail `json:"high"`
}

// BestURL returns the high rendition when present, falling back to default.
func (t YouTubeThumbnails) BestURL() string {
	if t.High != nil && t.High.URL != "" {
		return t.High.URL
	}
	if t.Default != nil {
		return t.Default.URL
	}
	return ""
}

type youtubeSnippet struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ChannelTitle string            `json:"channelTitle"`
	Thumbnails   YouTubeThumbnails `json:"thumbnails"`
}

type youtubeVideoItem struct {
	ID             string         `json:"id"`
	Snippet        youtubeSnippet `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type youtubePlaylistItem struct {
	Snippet        youtubeSnippet `json:"snippet"`
	ContentDetails struct {
		ItemCount int `json:"itemCount"`
	} `json:"contentDetails"`
}

type youtubePlaylistEntry struct {
	ContentDetails struct {
		VideoID string `json:"videoId"`
	} `json:"contentDetails"`
}

// YouTubeProvider implements the Provider interface against the YouTube Data API.
type YouTubeProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeProvider creates a provider using API key authentication.
// An empty baseURL selects the production API endpoint.
func NewYouTubeProvider(baseURL, apiKey string) *YouTubeProvider {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YouTubeProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(8), 16),
	}
}

// WithTokenSource switches the provider to OAuth authentication, enabling
// access to the token owner's private playlists.
func (y *YouTubeProvider) WithTokenSource(ctx context.Context, ts oauth2.TokenSource) *YouTubeProvider {
	y.httpClient = oauth2.NewClient(ctx, ts)
	return y
}

// Name returns the provider name.
func (y *YouTubeProvider) Name() string {
	return "YouTube"
}

func (y *YouTubeProvider) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrProvider, err)
	}

	if y.apiKey != "" {
		params.Set("key", y.apiKey)
	}
	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrProvider, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: remote resource", shared.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrProvider, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrProvider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrProvider, err)
	}

	return nil
}

// FetchVideo retrieves metadata for a single video.
//
// Calls GET /videos?part=snippet,contentDetails&id={remoteID}.
func (y *YouTubeProvider) FetchVideo(ctx context.Context, remoteID string) (*models.VideoMetadata, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", remoteID)

	var resp struct {
		Items []youtubeVideoItem `json:"items"`
	}
	if err := y.doRequest(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s", shared.ErrNotFound, remoteID)
	}

	meta := videoMetadata(resp.Items[0])
	return &meta, nil
}

// FetchPlaylist retrieves playlist metadata and the ordered metadata of its
// member videos.
//
// Makes three calls: /playlists for the playlist itself, /playlistItems for
// the member video ids in playlist order, and /videos for the members'
// snippets and durations. Only the first page of items is fetched.
func (y *YouTubeProvider) FetchPlaylist(ctx context.Context, remoteID string) (*models.PlaylistFetch, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", remoteID)

	var playlistResp struct {
		Items []youtubePlaylistItem `json:"items"`
	}
	if err := y.doRequest(ctx, "/playlists", params, &playlistResp); err != nil {
		return nil, err
	}
	if len(playlistResp.Items) == 0 {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrNotFound, remoteID)
	}

	item := playlistResp.Items[0]
	fetch := &models.PlaylistFetch{
		Playlist: models.PlaylistMetadata{
			Name:         item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: item.Snippet.Thumbnails.BestURL(),
			ItemCount:    item.ContentDetails.ItemCount,
		},
	}

	params = url.Values{}
	params.Set("part", "contentDetails")
	params.Set("playlistId", remoteID)
	params.Set("maxResults", strconv.Itoa(playlistPageSize))

	var itemsResp struct {
		Items []youtubePlaylistEntry `json:"items"`
	}
	if err := y.doRequest(ctx, "/playlistItems", params, &itemsResp); err != nil {
		return nil, err
	}
	if len(itemsResp.Items) == 0 {
		return fetch, nil
	}

	videoIDs := make([]string, 0, len(itemsResp.Items))
	for _, entry := range itemsResp.Items {
		if entry.ContentDetails.VideoID != "" {
			videoIDs = append(videoIDs, entry.ContentDetails.VideoID)
		}
	}

	params = url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", strings.Join(videoIDs, ","))

	var videosResp struct {
		Items []youtubeVideoItem `json:"items"`
	}
	if err := y.doRequest(ctx, "/videos", params, &videosResp); err != nil {
		return nil, err
	}

	// The /videos call silently drops deleted or private members; preserve
	// playlist order by walking the id list, not the response.
	byID := make(map[string]youtubeVideoItem, len(videosResp.Items))
	for _, v := range videosResp.Items {
		byID[v.ID] = v
	}
	for _, id := range videoIDs {
		if v, ok := byID[id]; ok {
			fetch.Videos = append(fetch.Videos, videoMetadata(v))
		}
	}

	return fetch, nil
}

func videoMetadata(item youtubeVideoItem) models.VideoMetadata {
	return models.VideoMetadata{
		RemoteID:     item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: item.Snippet.Thumbnails.BestURL(),
		Duration:     parseISODuration(item.ContentDetails.Duration),
		ChannelName:  item.Snippet.ChannelTitle,
	}
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO 8601 duration like PT1H2M3S to whole
// seconds. Malformed input parses as zero.
func parseISODuration(s string) int {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}
