package library

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"tubevault/internal/models"
	"tubevault/internal/shared"
)

// BulkRefreshOpts contains configuration for refreshing many playlists.
type BulkRefreshOpts struct {
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Refreshes started per second (default: 2)
}

// PlaylistRefreshResult is the outcome of one playlist in a bulk refresh.
type PlaylistRefreshResult struct {
	PlaylistID   string
	PlaylistName string
	Synced       int
	Skipped      []string
	Success      bool
	Error        error
}

// BulkRefreshResult contains the outcome of a bulk refresh run.
type BulkRefreshResult struct {
	TotalPlaylists int
	Refreshed      int
	Failed         int
	Results        []PlaylistRefreshResult
}

// RefreshAll refreshes every refreshable playlist the owner has, using a
// worker pool with rate limiting and progress reporting.
//
// Playlists without a remote id are excluded up front. Individual refresh
// failures are collected per playlist and do not stop the run.
func (l *Library) RefreshAll(ctx context.Context, progress chan<- ProgressUpdate, ownerID string, opts BulkRefreshOpts) (*BulkRefreshResult, error) {
	if ownerID == "" {
		return nil, shared.ErrUnauthorized
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	playlists, err := l.playlists.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	var refreshable []*models.Playlist
	for _, p := range playlists {
		if p.Refreshable() {
			refreshable = append(refreshable, p)
		}
	}

	result := &BulkRefreshResult{
		TotalPlaylists: len(refreshable),
		Results:        make([]PlaylistRefreshResult, 0, len(refreshable)),
	}
	if len(refreshable) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan *models.Playlist, len(refreshable))
	results := make(chan PlaylistRefreshResult, len(refreshable))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go l.refreshWorker(ctx, &wg, ownerID, jobs, results)
	}

	go func() {
		defer close(jobs)
		for i, playlist := range refreshable {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			l.sendProgress(progress, bulkRefreshUpdate(i+1, len(refreshable), playlist.Name()))
			jobs <- playlist
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Refreshed++
			l.sendProgress(progress, bulkCompletedUpdate(completed, len(refreshable), res.PlaylistName, res.Synced))
		} else {
			result.Failed++
			l.sendProgress(progress, bulkFailedUpdate(completed, len(refreshable), res.PlaylistName, res.Error))
		}
	}

	return result, nil
}

// refreshWorker is a worker goroutine that refreshes playlists from the jobs channel.
func (l *Library) refreshWorker(ctx context.Context, wg *sync.WaitGroup, ownerID string, jobs <-chan *models.Playlist, results chan<- PlaylistRefreshResult) {
	defer wg.Done()

	for playlist := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := PlaylistRefreshResult{
			PlaylistID:   playlist.ID(),
			PlaylistName: playlist.Name(),
		}

		sr, err := l.RefreshPlaylist(ctx, nil, ownerID, playlist.ID())
		if err != nil {
			res.Error = err
		} else {
			res.Success = true
			res.Synced = sr.Synced
			res.Skipped = sr.Skipped
		}

		results <- res
	}
}
