package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"tubevault/internal/shared"
)

// VideoAdd fetches a video by URL or ID and stores it as a standalone entry.
func (r *Runner) VideoAdd(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("ref")
	if ref == "" {
		return fmt.Errorf("%w: a video URL or ID is required", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	video, err := r.lib.AddVideo(ctx, owner.ID(), ref)
	if err != nil {
		return err
	}

	r.logger.Info("video added", "id", video.ID(), "remote_id", video.RemoteID())
	return r.writePlain("✓ Added %s (%s, %s) [%s]\n",
		video.Title(), video.ChannelName(), shared.FormatDuration(video.Duration()), video.ID())
}

// VideoRemove deletes a video and its playlist entries.
func (r *Runner) VideoRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: a video ID is required", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(ctx); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	if err := r.lib.DeleteVideo(ctx, owner.ID(), id); err != nil {
		return err
	}

	r.logger.Info("video deleted", "id", id)
	return r.writePlain("✓ Deleted video %s\n", id)
}
