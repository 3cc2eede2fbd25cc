package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olimci/versync/pkg/syncer"
	"github.com/olimci/versync/pkg/watcher"
	"github.com/urfave/cli/v3"
)

// Watch keeps the named manifests synced: an initial sync, then one
// re-sync per debounced batch of file changes until interrupted.
func Watch(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("watch requires at least one manifest path")
	}

	opts := syncer.Options{InPlace: cmd.Bool("in-place")}

	results, err := syncer.SyncAll(ctx, paths, opts)
	if err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	w, err := watcher.New(paths, cmd.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}

	log.Printf("versync watching: %s", strings.Join(paths, ", "))
	logSync(1, "initial", results)

	n := 1
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-w.Events:
			n++
			results, err := syncer.SyncAll(ctx, ev.Paths, opts)
			if err != nil {
				// Keep watching; a half-saved manifest usually gets
				// fixed by the next write.
				log.Printf("ERR  sync #%d failed (%s): %v", n, ev.Reason, err)
				continue
			}
			logSync(n, ev.Reason, results)

		case err := <-w.Errors:
			log.Printf("watch error: %v", err)
		}
	}
}

func logSync(n int, reason string, results []*syncer.Result) {
	for _, res := range results {
		if !res.Changed {
			continue
		}
		log.Printf("OK   sync #%d: %s -> %d dependencies at %s in %s (%s)",
			n, res.Path, res.Rewritten, res.Version,
			res.Duration.Truncate(time.Microsecond), reason)
	}
}
