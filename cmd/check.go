package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olimci/versync/pkg/manifest"
	"github.com/olimci/versync/pkg/version"
	"github.com/urfave/cli/v3"
)

// Check reports every dependency whose pinned version differs from
// the manifest's declared version. Intended as a CI gate: any drift
// makes the process exit non-zero.
func Check(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return errors.New("check requires at least one manifest path")
	}

	out := io.Writer(os.Stdout)
	if cmd.Bool("quiet") {
		out = io.Discard
	}
	printer := newReportPrinter(out)

	drift := 0
	for _, path := range paths {
		n, err := checkManifest(printer, path, cmd.Bool("strict"))
		if err != nil {
			return err
		}
		drift += n
	}

	if drift > 0 {
		return fmt.Errorf("%d dependencies out of sync", drift)
	}
	return nil
}

func checkManifest(printer *reportPrinter, path string, strict bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read manifest: %w", err)
	}

	doc, err := manifest.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	if strict {
		if decls := manifest.Versions(data); len(decls) > 1 {
			printer.Print(reportWarn, path,
				fmt.Sprintf("%d version declarations; the first (%s) wins", len(decls), decls[0]))
		}
	}

	drift := 0
	for _, dep := range doc.Dependencies {
		if dep.Version != doc.Version {
			drift++
			printer.Print(reportFail, path,
				fmt.Sprintf("%s pinned at %q, manifest declares %q", dep.Name, dep.Version, doc.Version))
			if strict && ahead(dep.Version, doc.Version) {
				printer.Print(reportWarn, path,
					fmt.Sprintf("%s is ahead of the declared version; syncing would downgrade it", dep.Name))
			}
		}
	}

	if drift == 0 {
		printer.Print(reportOK, path,
			fmt.Sprintf("%d dependencies at version %s", len(doc.Dependencies), doc.Version))
	}

	return drift, nil
}

// ahead reports whether a sorts after b. Tokens that are not semver
// triples are never comparable.
func ahead(a, b string) bool {
	av, err := version.Parse(a)
	if err != nil {
		return false
	}
	bv, err := version.Parse(b)
	if err != nil {
		return false
	}
	return av.Compare(bv) > 0
}
