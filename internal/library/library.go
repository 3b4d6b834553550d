// package library implements the personal video library engine.
//
// The core abstraction is Library, which orchestrates imports, refreshes, and
// deletions against a metadata Provider and the persistence stores. Long
// operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"tubevault/internal/models"
	"tubevault/internal/services"
	"tubevault/internal/shared"
)

// VideoStore persists video records scoped to an owner.
type VideoStore interface {
	Create(video *models.Video) error
	Get(id, ownerID string) (*models.Video, error)
	GetByRemoteID(ownerID, remoteID string) (*models.Video, error)
	ListByOwner(ownerID string) ([]*models.Video, error)
	Delete(id, ownerID string) error
	DeleteByIDs(ownerID string, ids []string) error
}

// PlaylistStore persists playlist records scoped to an owner.
type PlaylistStore interface {
	Create(playlist *models.Playlist) error
	Get(id, ownerID string) (*models.Playlist, error)
	ListByOwner(ownerID string) ([]*models.Playlist, error)
	Update(playlist *models.Playlist) error
	Delete(id, ownerID string) error
}

// MembershipStore persists the ordered playlist/video link rows.
type MembershipStore interface {
	Insert(membership *models.Membership) error
	ListByPlaylist(playlistID string) ([]models.MembershipEntry, error)
	VideoIDsByPlaylist(playlistID string) ([]string, error)
	MemberVideoIDs(ownerID string) (map[string]struct{}, error)
	DeleteByPlaylist(playlistID string) error
	DeleteByVideo(videoID string) error
}

// Library orchestrates all library operations for one metadata provider.
type Library struct {
	provider    services.Provider
	videos      VideoStore
	playlists   PlaylistStore
	memberships MembershipStore
	logger      *log.Logger
}

// NewLibrary creates a Library wired to the given provider and stores.
func NewLibrary(provider services.Provider, videos VideoStore, playlists PlaylistStore, memberships MembershipStore, logger *log.Logger) *Library {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Library{
		provider:    provider,
		videos:      videos,
		playlists:   playlists,
		memberships: memberships,
		logger:      logger,
	}
}

// SetLogger replaces the library's logger.
func (l *Library) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (l *Library) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// AddVideo fetches metadata for a video reference and stores it as a
// standalone record for the owner.
//
// Returns shared.ErrAlreadyExists if the owner already has a record for the
// resolved remote id, whether standalone or via a playlist.
func (l *Library) AddVideo(ctx context.Context, ownerID, ref string) (*models.Video, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	remoteID, err := shared.ParseVideoRef(ref)
	if err != nil {
		return nil, err
	}

	if existing, err := l.videos.GetByRemoteID(ownerID, remoteID); err == nil {
		return nil, fmt.Errorf("%w: video %s (local id %s)", shared.ErrAlreadyExists, remoteID, existing.ID())
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	meta, err := l.provider.FetchVideo(ctx, remoteID)
	if err != nil {
		return nil, err
	}

	video := models.NewVideo(0, ownerID, remoteID, *meta)
	if err := l.videos.Create(video); err != nil {
		return nil, err
	}

	l.logger.Info("added video", "owner", ownerID, "remote_id", remoteID, "title", video.Title())
	return video, nil
}

// DeleteVideo removes a video record and every membership row referencing it.
//
// Playlist summary fields are not recomputed here, so counts on playlists
// that contained the video go stale until their next refresh.
func (l *Library) DeleteVideo(ctx context.Context, ownerID, videoID string) error {
	if ownerID == "" {
		return shared.ErrUnauthorized
	}

	if _, err := l.videos.Get(videoID, ownerID); err != nil {
		return err
	}

	if err := l.memberships.DeleteByVideo(videoID); err != nil {
		return err
	}
	if err := l.videos.Delete(videoID, ownerID); err != nil {
		return err
	}

	l.logger.Info("deleted video", "owner", ownerID, "video_id", videoID)
	return nil
}

// DeletePlaylist removes a playlist, its membership rows, and every video
// that was a member.
//
// Member videos are deleted unconditionally, including videos that also
// appear in the owner's other playlists or were added standalone.
func (l *Library) DeletePlaylist(ctx context.Context, ownerID, playlistID string) error {
	if ownerID == "" {
		return shared.ErrUnauthorized
	}

	if _, err := l.playlists.Get(playlistID, ownerID); err != nil {
		return err
	}

	videoIDs, err := l.memberships.VideoIDsByPlaylist(playlistID)
	if err != nil {
		return err
	}

	if err := l.memberships.DeleteByPlaylist(playlistID); err != nil {
		return err
	}
	if err := l.playlists.Delete(playlistID, ownerID); err != nil {
		return err
	}
	if err := l.videos.DeleteByIDs(ownerID, videoIDs); err != nil {
		return err
	}

	l.logger.Info("deleted playlist", "owner", ownerID, "playlist_id", playlistID, "videos_removed", len(videoIDs))
	return nil
}

// LibraryView is the owner's library split into playlists and the standalone
// videos that belong to no playlist.
type LibraryView struct {
	Playlists  []*models.Playlist
	Standalone []*models.Video
}

// List returns the owner's playlists and standalone videos.
func (l *Library) List(ctx context.Context, ownerID string) (*LibraryView, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	playlists, err := l.playlists.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	videos, err := l.videos.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	members, err := l.memberships.MemberVideoIDs(ownerID)
	if err != nil {
		return nil, err
	}

	view := &LibraryView{Playlists: playlists}
	for _, video := range videos {
		if _, ok := members[video.ID()]; !ok {
			view.Standalone = append(view.Standalone, video)
		}
	}

	return view, nil
}

// PlaylistDetail is a playlist together with its member videos in position order.
type PlaylistDetail struct {
	Playlist *models.Playlist
	Videos   []*models.Video
}

// PlaylistVideos returns the playlist and its member videos ordered by position.
func (l *Library) PlaylistVideos(ctx context.Context, ownerID, playlistID string) (*PlaylistDetail, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	playlist, err := l.playlists.Get(playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	entries, err := l.memberships.ListByPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	detail := &PlaylistDetail{Playlist: playlist}
	for _, entry := range entries {
		video, err := l.videos.Get(entry.VideoID, ownerID)
		if err != nil {
			return nil, err
		}
		detail.Videos = append(detail.Videos, video)
	}

	return detail, nil
}
