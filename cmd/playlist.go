package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/urfave/cli/v3"

	"tubevault/internal/formatter"
	"tubevault/internal/library"
	"tubevault/internal/shared"
)

// drainProgress prints sync progress messages until the channel closes.
func (r *Runner) drainProgress(progress <-chan library.ProgressUpdate, wg *sync.WaitGroup) {
	defer wg.Done()
	for update := range progress {
		if update.Total > 0 {
			r.writePlain("  [%d/%d] %s\n", update.Step, update.Total, update.Message)
		} else {
			r.writePlain("  %s\n", update.Message)
		}
	}
}

func (r *Runner) printSyncResult(result *library.SyncResult) error {
	playlist := result.Playlist
	if err := r.writePlain("✓ %s: %d videos (%d new, %d reused), %s total\n",
		playlist.Name(), result.Synced, result.CreatedVideos, result.ReusedVideos,
		shared.FormatDuration(playlist.TotalDuration())); err != nil {
		return err
	}

	for _, remoteID := range result.Skipped {
		if err := r.writePlain("  skipped %s\n", remoteID); err != nil {
			return err
		}
	}
	return nil
}

// PlaylistImport fetches a remote playlist and stores it with all its videos.
func (r *Runner) PlaylistImport(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("ref")
	if ref == "" {
		return fmt.Errorf("%w: a playlist URL or ID is required", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	progress := make(chan library.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.drainProgress(progress, &wg)

	result, err := r.lib.ImportPlaylist(ctx, progress, owner.ID(), ref)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	r.logger.Info("playlist imported", "id", result.Playlist.ID(), "synced", result.Synced)
	return r.printSyncResult(result)
}

// PlaylistRefresh re-syncs one playlist, or every refreshable playlist with --all.
func (r *Runner) PlaylistRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		return r.refreshAll(ctx, owner.ID(), library.BulkRefreshOpts{
			NumWorkers: int(cmd.Int("workers")),
			RateLimit:  cmd.Float("rate"),
		})
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: a playlist ID is required (or pass --all)", shared.ErrMissingArgument)
	}

	progress := make(chan library.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.drainProgress(progress, &wg)

	result, err := r.lib.RefreshPlaylist(ctx, progress, owner.ID(), id)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	r.logger.Info("playlist refreshed", "id", id, "synced", result.Synced)
	return r.printSyncResult(result)
}

func (r *Runner) refreshAll(ctx context.Context, ownerID string, opts library.BulkRefreshOpts) error {
	progress := make(chan library.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.drainProgress(progress, &wg)

	result, err := r.lib.RefreshAll(ctx, progress, ownerID, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	for _, pr := range result.Results {
		if pr.Success {
			r.writePlain("✓ %s: %d videos\n", pr.PlaylistName, pr.Synced)
		} else {
			r.writePlain("✗ %s: %v\n", pr.PlaylistName, pr.Error)
		}
	}

	r.logger.Info("bulk refresh finished",
		"total", result.TotalPlaylists, "refreshed", result.Refreshed, "failed", result.Failed)
	return r.writePlain("Refreshed %d of %d playlists (%d failed)\n",
		result.Refreshed, result.TotalPlaylists, result.Failed)
}

// PlaylistRemove deletes a playlist along with its member videos.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: a playlist ID is required", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	if err := r.lib.DeletePlaylist(ctx, owner.ID(), id); err != nil {
		return err
	}

	r.logger.Info("playlist deleted", "id", id)
	return r.writePlain("✓ Deleted playlist %s and its videos\n", id)
}

// PlaylistShow prints a playlist and its videos in order.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: a playlist ID is required", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	detail, err := r.lib.PlaylistVideos(ctx, owner.ID(), id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(detail)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	}

	playlist := detail.Playlist
	r.writePlain("%s [%s]\n", playlist.Name(), playlist.ID())
	if playlist.Description() != "" {
		r.writePlain("%s\n", playlist.Description())
	}
	r.writePlain("%d videos, %s\n\n", playlist.VideoCount(), shared.FormatDuration(playlist.TotalDuration()))

	for i, video := range detail.Videos {
		if err := r.writePlain("%3d. %s (%s, %s) [%s]\n",
			i+1, video.Title(), video.ChannelName(),
			shared.FormatDuration(video.Duration()), video.ID()); err != nil {
			return err
		}
	}
	return nil
}
