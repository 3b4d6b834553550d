// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the database, config file, and owner account.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database, config file, and library owner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles OAuth authentication against the YouTube Data API.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize via browser OAuth flow and save the token",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the saved OAuth token state",
				Action: r.AuthStatus,
			},
		},
	}
}

// videoCommand handles standalone video operations.
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"v"},
		Usage:   "Manage individual videos",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a video by URL or ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Action: r.VideoAdd,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Delete a video and its playlist entries",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VideoRemove,
			},
		},
	}
}

// playlistCommand handles playlist operations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:    "import",
				Aliases: []string{"add"},
				Usage:   "Import a playlist by URL or ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "ref"},
				},
				Action: r.PlaylistImport,
			},
			{
				Name:  "refresh",
				Usage: "Re-sync a playlist (or all playlists) from its source",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Refresh every playlist that has a remote source",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent refresh workers (with --all)",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Playlist fetches per second (with --all)",
						Value: 2.0,
					},
				},
				Action: r.PlaylistRefresh,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Delete a playlist and its member videos",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its videos in order",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: r.PlaylistShow,
			},
		},
	}
}

// listCommand prints the whole library.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List playlists and standalone videos",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: r.List,
	}
}

// exportCommand writes a playlist to a file in a chosen format.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist to a file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown, txt, or json",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: <playlist id>.<ext>)",
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and refreshing playlists",
		Action:  r.TUI,
	}
}
