package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tubevault/internal/shared"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT0S", 0},
		{"", 0},
		{"4M13S", 0},
		{"PTgarbage", 0},
	}

	for _, tc := range cases {
		if got := parseISODuration(tc.in); got != tc.want {
			t.Errorf("parseISODuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFetchVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key param, got %q", r.URL.Query().Get("key"))
		}

		switch r.URL.Query().Get("id") {
		case "dQw4w9WgXcQ":
			fmt.Fprint(w, `{
				"items": [{
					"id": "dQw4w9WgXcQ",
					"snippet": {
						"title": "Test Video",
						"description": "A description",
						"channelTitle": "Test Channel",
						"thumbnails": {
							"default": {"url": "https://img.example/default.jpg"},
							"high": {"url": "https://img.example/high.jpg"}
						}
					},
					"contentDetails": {"duration": "PT4M13S"}
				}]
			}`)
		default:
			fmt.Fprint(w, `{"items": []}`)
		}
	}))
	defer server.Close()

	provider := NewYouTubeProvider(server.URL, "test-key")

	t.Run("found", func(t *testing.T) {
		meta, err := provider.FetchVideo(context.Background(), "dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta.Title != "Test Video" {
			t.Errorf("unexpected title: %q", meta.Title)
		}
		if meta.Duration != 253 {
			t.Errorf("unexpected duration: %d", meta.Duration)
		}
		if meta.ChannelName != "Test Channel" {
			t.Errorf("unexpected channel: %q", meta.ChannelName)
		}
		if meta.ThumbnailURL != "https://img.example/high.jpg" {
			t.Errorf("expected high thumbnail, got %q", meta.ThumbnailURL)
		}
		if meta.RemoteID != "dQw4w9WgXcQ" {
			t.Errorf("unexpected remote id: %q", meta.RemoteID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := provider.FetchVideo(context.Background(), "missing00xx")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestFetchVideoServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	provider := NewYouTubeProvider(server.URL, "test-key")
	_, err := provider.FetchVideo(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, shared.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestFetchPlaylist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/playlists":
			if r.URL.Query().Get("id") == "PLempty" {
				fmt.Fprint(w, `{"items": []}`)
				return
			}
			fmt.Fprint(w, `{
				"items": [{
					"snippet": {
						"title": "My Mix",
						"description": "playlist desc",
						"thumbnails": {"default": {"url": "https://img.example/pl.jpg"}}
					},
					"contentDetails": {"itemCount": 3}
				}]
			}`)
		case "/playlistItems":
			if r.URL.Query().Get("maxResults") != "50" {
				t.Errorf("expected maxResults=50, got %q", r.URL.Query().Get("maxResults"))
			}
			fmt.Fprint(w, `{
				"items": [
					{"contentDetails": {"videoId": "vid0000000a"}},
					{"contentDetails": {"videoId": "vid0000000b"}},
					{"contentDetails": {"videoId": "vid0000000c"}}
				]
			}`)
		case "/videos":
			fmt.Fprint(w, `{
				"items": [
					{
						"id": "vid0000000c",
						"snippet": {"title": "Third", "channelTitle": "C"},
						"contentDetails": {"duration": "PT3M"}
					},
					{
						"id": "vid0000000a",
						"snippet": {"title": "First", "channelTitle": "A"},
						"contentDetails": {"duration": "PT1M"}
					}
				]
			}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	provider := NewYouTubeProvider(server.URL, "test-key")

	t.Run("order follows playlist, not response", func(t *testing.T) {
		fetch, err := provider.FetchPlaylist(context.Background(), "PLmix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if fetch.Playlist.Name != "My Mix" {
			t.Errorf("unexpected playlist name: %q", fetch.Playlist.Name)
		}
		if fetch.Playlist.ItemCount != 3 {
			t.Errorf("unexpected item count: %d", fetch.Playlist.ItemCount)
		}

		// vid0000000b was dropped by the /videos call; remaining videos keep
		// playlist order even though the response came back reordered.
		if len(fetch.Videos) != 2 {
			t.Fatalf("expected 2 videos, got %d", len(fetch.Videos))
		}
		if fetch.Videos[0].RemoteID != "vid0000000a" || fetch.Videos[1].RemoteID != "vid0000000c" {
			t.Errorf("unexpected order: %q, %q", fetch.Videos[0].RemoteID, fetch.Videos[1].RemoteID)
		}
		if fetch.Videos[0].Duration != 60 {
			t.Errorf("unexpected duration: %d", fetch.Videos[0].Duration)
		}
	})

	t.Run("missing playlist", func(t *testing.T) {
		_, err := provider.FetchPlaylist(context.Background(), "PLempty")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestFetchPlaylistEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/playlists":
			fmt.Fprint(w, `{
				"items": [{
					"snippet": {"title": "Empty"},
					"contentDetails": {"itemCount": 0}
				}]
			}`)
		case "/playlistItems":
			fmt.Fprint(w, `{"items": []}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	provider := NewYouTubeProvider(server.URL, "test-key")
	fetch, err := provider.FetchPlaylist(context.Background(), "PLempty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetch.Videos) != 0 {
		t.Errorf("expected no videos, got %d", len(fetch.Videos))
	}
}
