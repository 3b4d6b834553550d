// package services defines interface Provider for fetching video and playlist
// metadata from a remote catalog.
package services

import (
	"context"

	"tubevault/internal/models"
)

// Provider defines the interface for remote metadata sources.
//
// Implementations return shared.ErrNotFound when the remote id does not resolve
// and wrap transport or API failures in shared.ErrProvider.
type Provider interface {
	// FetchVideo retrieves metadata for a single video by its remote identifier.
	FetchVideo(ctx context.Context, remoteID string) (*models.VideoMetadata, error)

	// FetchPlaylist retrieves playlist metadata together with the ordered
	// metadata of its member videos.
	FetchPlaylist(ctx context.Context, remoteID string) (*models.PlaylistFetch, error)

	// Name returns the name of the provider (e.g., "YouTube")
	Name() string
}
