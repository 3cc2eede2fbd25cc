package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/olimci/versync/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "versync",
		Usage: "Synchronize path-dependency versions in a manifest",
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("versync version %s\n", Version)
					return nil
				},
			},
			{
				Name:      "sync",
				Usage:     "Rewrite every path dependency to the manifest's declared version",
				ArgsUsage: "<manifest>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Value: false, Usage: "Report what would change without writing"},
					&cli.BoolFlag{Name: "in-place", Value: false, Usage: "Overwrite the file directly instead of temp-file-and-rename"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Value: false, Usage: "Suppress output"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return Sync(ctx, cmd)
				},
			},
			{
				Name:      "check",
				Usage:     "Exit non-zero if any dependency version differs from the declared version",
				ArgsUsage: "<manifest>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, Value: false, Usage: "Also flag duplicate version declarations and dependencies ahead of the declared version"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Value: false, Usage: "Suppress output"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return Check(ctx, cmd)
				},
			},
			{
				Name:      "list",
				Usage:     "Print the declared version and path dependencies",
				ArgsUsage: "<manifest>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Output format: text, toml or yaml"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return List(ctx, cmd)
				},
			},
			{
				Name:      "watch",
				Usage:     "Re-run sync whenever a manifest changes",
				ArgsUsage: "<manifest>...",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "debounce", Value: 250 * time.Millisecond, Usage: "Debounce window for re-syncs"},
					&cli.BoolFlag{Name: "in-place", Value: false, Usage: "Overwrite files directly instead of temp-file-and-rename"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return Watch(ctx, cmd)
				},
			},
		},
	}

	return app.Run(ctx, args)
}
