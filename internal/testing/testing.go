// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// MockProvider is a configurable test double for [services.Provider].
//
// Videos and Playlists are keyed by remote id; a missing key yields
// shared.ErrNotFound. Err, when set, is returned from every call.
type MockProvider struct {
	Videos    map[string]models.VideoMetadata
	Playlists map[string]models.PlaylistFetch
	Err       error

	VideoCalls    []string
	PlaylistCalls []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Videos:    make(map[string]models.VideoMetadata),
		Playlists: make(map[string]models.PlaylistFetch),
	}
}

func (m *MockProvider) FetchVideo(ctx context.Context, remoteID string) (*models.VideoMetadata, error) {
	m.VideoCalls = append(m.VideoCalls, remoteID)
	if m.Err != nil {
		return nil, m.Err
	}
	meta, ok := m.Videos[remoteID]
	if !ok {
		return nil, fmt.Errorf("%w: video %s", shared.ErrNotFound, remoteID)
	}
	return &meta, nil
}

func (m *MockProvider) FetchPlaylist(ctx context.Context, remoteID string) (*models.PlaylistFetch, error) {
	m.PlaylistCalls = append(m.PlaylistCalls, remoteID)
	if m.Err != nil {
		return nil, m.Err
	}
	fetch, ok := m.Playlists[remoteID]
	if !ok {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrNotFound, remoteID)
	}
	return &fetch, nil
}

func (m *MockProvider) Name() string { return "mock" }

// SetPlaylist registers a playlist fetch built from video metadata in order.
func (m *MockProvider) SetPlaylist(remoteID, name string, videos ...models.VideoMetadata) {
	totalCount := len(videos)
	m.Playlists[remoteID] = models.PlaylistFetch{
		Playlist: models.PlaylistMetadata{Name: name, ItemCount: totalCount},
		Videos:   videos,
	}
}

// Video builds video metadata with a derived title and the given duration.
func Video(remoteID string, duration int) models.VideoMetadata {
	return models.VideoMetadata{
		RemoteID:    remoteID,
		Title:       "Video " + remoteID,
		Duration:    duration,
		ChannelName: "Channel",
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
