package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"tubevault/internal/formatter"
	"tubevault/internal/shared"
)

// Export writes a playlist to a file in the chosen format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
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

	path, err := formatter.WriteExport(detail, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("playlist exported", "id", id, "path", path, "format", cmd.String("format"))
	return r.writePlain("✓ Exported %s (%d videos) to %s\n",
		detail.Playlist.Name(), len(detail.Videos), path)
}
