package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"tubevault/internal/shared"
)

type playlistSummary struct {
	ID            string `json:"id"`
	RemoteID      string `json:"remote_id,omitempty"`
	Name          string `json:"name"`
	VideoCount    int    `json:"video_count"`
	TotalDuration int    `json:"total_duration"`
}

type videoSummary struct {
	ID       string `json:"id"`
	RemoteID string `json:"remote_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Duration int    `json:"duration"`
}

type libraryListing struct {
	Playlists  []playlistSummary `json:"playlists"`
	Standalone []videoSummary    `json:"standalone"`
}

// List prints every playlist and standalone video in the library.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	view, err := r.lib.List(ctx, owner.ID())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		listing := libraryListing{Playlists: []playlistSummary{}, Standalone: []videoSummary{}}
		for _, p := range view.Playlists {
			listing.Playlists = append(listing.Playlists, playlistSummary{
				ID:            p.ID(),
				RemoteID:      p.RemoteID(),
				Name:          p.Name(),
				VideoCount:    p.VideoCount(),
				TotalDuration: p.TotalDuration(),
			})
		}
		for _, v := range view.Standalone {
			listing.Standalone = append(listing.Standalone, videoSummary{
				ID:       v.ID(),
				RemoteID: v.RemoteID(),
				Title:    v.Title(),
				Channel:  v.ChannelName(),
				Duration: v.Duration(),
			})
		}
		return r.writeJSON(listing, true)
	}

	if len(view.Playlists) == 0 && len(view.Standalone) == 0 {
		return r.writePlain("Library is empty. Try 'tubevault playlist import <url>'.\n")
	}

	if len(view.Playlists) > 0 {
		r.writePlain("Playlists\n")
		for _, p := range view.Playlists {
			source := "local only"
			if p.Refreshable() {
				source = p.RemoteID()
			}
			r.writePlain("  %s  %s (%d videos, %s) [%s]\n",
				p.ID(), p.Name(), p.VideoCount(), shared.FormatDuration(p.TotalDuration()), source)
		}
	}

	if len(view.Standalone) > 0 {
		r.writePlainln("Videos")
		for _, v := range view.Standalone {
			r.writePlain("  %s  %s (%s, %s)\n",
				v.ID(), v.Title(), v.ChannelName(), shared.FormatDuration(v.Duration()))
		}
	}

	return nil
}
