package syncer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olimci/versync/pkg/fileutils"
	"github.com/olimci/versync/pkg/manifest"
	"golang.org/x/sync/errgroup"
)

// Options controls how a manifest is written back.
type Options struct {
	// InPlace truncates and rewrites the file directly instead of the
	// default temp-file-and-rename. An interrupted in-place write can
	// leave the manifest truncated.
	InPlace bool

	// DryRun computes the result without writing anything.
	DryRun bool
}

// Result describes one completed sync.
type Result struct {
	Path      string
	Version   string
	Rewritten int
	Changed   bool
	Duration  time.Duration
}

// Sync rewrites the manifest at path so every path-dependency line
// carries the manifest's declared version. An unchanged manifest is
// not written at all.
func Sync(path string, opts Options) (*Result, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	out, version, rewritten, err := manifest.Rewrite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &Result{
		Path:      path,
		Version:   version,
		Rewritten: rewritten,
		Changed:   !bytes.Equal(out, data),
	}

	if !opts.DryRun && res.Changed {
		if err := write(path, out, opts.InPlace); err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

func write(path string, data []byte, inPlace bool) error {
	if inPlace {
		return os.WriteFile(path, data, 0o644)
	}
	return fileutils.AtomicWrite(path, data, 0o644)
}

// SyncAll syncs several manifests concurrently. Results are returned
// in input order; the first failure cancels the rest.
func SyncAll(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Sync(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
