package library

import (
	"context"
	"errors"
	"fmt"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// SyncResult summarizes one membership rebuild.
type SyncResult struct {
	Playlist      *models.Playlist // Playlist after summary write
	Synced        int              // Membership rows created
	CreatedVideos int              // Video records created during the rebuild
	ReusedVideos  int              // Existing video records linked
	Skipped       []string         // Remote ids dropped because the video record could not be created
}

// ImportPlaylist fetches a remote playlist and stores it with its full
// membership set.
//
// Importing the same remote playlist twice creates two independent local
// playlists; there is no duplicate guard.
func (l *Library) ImportPlaylist(ctx context.Context, progress chan<- ProgressUpdate, ownerID, ref string) (*SyncResult, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	remoteID, err := shared.ParsePlaylistRef(ref)
	if err != nil {
		return nil, err
	}

	l.sendProgress(progress, fetchRemoteUpdate(remoteID))
	fetch, err := l.provider.FetchPlaylist(ctx, remoteID)
	if err != nil {
		return nil, err
	}

	playlist := models.NewPlaylist(0, ownerID, remoteID, fetch.Playlist)
	if err := l.playlists.Create(playlist); err != nil {
		return nil, err
	}

	result, err := l.reconcile(ctx, progress, playlist, fetch)
	if err != nil {
		return nil, err
	}

	l.logger.Info("imported playlist", "owner", ownerID, "remote_id", remoteID,
		"name", playlist.Name(), "videos", result.Synced, "skipped", len(result.Skipped))
	return result, nil
}

// RefreshPlaylist re-fetches a playlist's remote state and rebuilds its
// membership set to match.
//
// Returns shared.ErrNotRefreshable for playlists without a remote id. A
// remote id that no longer resolves surfaces as shared.ErrNotFound and the
// stored playlist is left untouched.
func (l *Library) RefreshPlaylist(ctx context.Context, progress chan<- ProgressUpdate, ownerID, playlistID string) (*SyncResult, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	playlist, err := l.playlists.Get(playlistID, ownerID)
	if err != nil {
		return nil, err
	}
	if !playlist.Refreshable() {
		return nil, fmt.Errorf("%w: playlist %s", shared.ErrNotRefreshable, playlistID)
	}

	l.sendProgress(progress, fetchRemoteUpdate(playlist.RemoteID()))
	fetch, err := l.provider.FetchPlaylist(ctx, playlist.RemoteID())
	if err != nil {
		return nil, err
	}

	playlist.ApplyMetadata(fetch.Playlist)

	result, err := l.reconcile(ctx, progress, playlist, fetch)
	if err != nil {
		return nil, err
	}

	l.logger.Info("refreshed playlist", "owner", ownerID, "playlist_id", playlistID,
		"videos", result.Synced, "skipped", len(result.Skipped))
	return result, nil
}

// reconcile replaces the playlist's membership set with the fetched one.
//
// The existing rows are deleted first, then one row is inserted per fetched
// video in remote order. Video records are reused by remote id when the owner
// already has one; otherwise a record is created. A video whose record cannot
// be created is skipped and the rebuild continues, so positions stay
// contiguous over the rows actually inserted. A membership insert failure
// aborts the rebuild.
//
// The summary written afterwards always reflects the full fetched set, so a
// rebuild with skips reports more videos than it linked.
func (l *Library) reconcile(ctx context.Context, progress chan<- ProgressUpdate, playlist *models.Playlist, fetch *models.PlaylistFetch) (*SyncResult, error) {
	if err := l.memberships.DeleteByPlaylist(playlist.ID()); err != nil {
		return nil, err
	}

	result := &SyncResult{Playlist: playlist}
	total := len(fetch.Videos)
	totalDuration := 0
	position := 0

	for i, meta := range fetch.Videos {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", shared.ErrStore, ctx.Err())
		default:
		}

		totalDuration += meta.Duration
		l.sendProgress(progress, syncVideoUpdate(i+1, total, meta.Title))

		video, err := l.videos.GetByRemoteID(playlist.OwnerID(), meta.RemoteID)
		switch {
		case err == nil:
			result.ReusedVideos++
		case errors.Is(err, shared.ErrNotFound):
			video = models.NewVideo(0, playlist.OwnerID(), meta.RemoteID, meta)
			if createErr := l.videos.Create(video); createErr != nil {
				l.logger.Warn("skipping playlist entry", "remote_id", meta.RemoteID, "error", createErr)
				l.sendProgress(progress, videoSkippedUpdate(i+1, total, meta.RemoteID, createErr))
				result.Skipped = append(result.Skipped, meta.RemoteID)
				continue
			}
			result.CreatedVideos++
		default:
			return nil, err
		}

		if err := l.memberships.Insert(models.NewMembership(playlist.ID(), video.ID(), position)); err != nil {
			return nil, err
		}
		position++
		result.Synced++
	}

	playlist.SetSummary(total, totalDuration)
	if err := l.playlists.Update(playlist); err != nil {
		return nil, err
	}
	l.sendProgress(progress, writeSummaryUpdate(playlist.Name(), total, totalDuration))

	return result, nil
}
