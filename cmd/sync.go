package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olimci/versync/pkg/syncer"
	"github.com/urfave/cli/v3"
)

// Sync runs the rewrite over every manifest named on the command line.
func Sync(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("sync requires at least one manifest path")
	}

	opts := syncer.Options{
		InPlace: cmd.Bool("in-place"),
		DryRun:  cmd.Bool("dry-run"),
	}

	results, err := syncer.SyncAll(ctx, paths, opts)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if cmd.Bool("quiet") {
		return nil
	}

	printer := newReportPrinter(os.Stdout)
	for _, res := range results {
		printer.Print(syncLevel(res, opts.DryRun), res.Path, syncMessage(res, opts.DryRun))
	}

	return nil
}

func syncLevel(res *syncer.Result, dryRun bool) reportLevel {
	if dryRun && res.Changed {
		return reportWarn
	}
	return reportOK
}

func syncMessage(res *syncer.Result, dryRun bool) string {
	switch {
	case dryRun && res.Changed:
		return fmt.Sprintf("would rewrite %d dependencies to version %s",
			res.Rewritten, res.Version)
	case res.Changed:
		return fmt.Sprintf("rewrote %d dependencies to version %s in %s",
			res.Rewritten, res.Version, res.Duration.Truncate(time.Microsecond))
	default:
		return fmt.Sprintf("up to date (version %s, %d dependencies)",
			res.Version, res.Rewritten)
	}
}
