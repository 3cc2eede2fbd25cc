package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/olimci/versync/pkg/manifest"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// List prints the declared version and the path dependencies of one
// manifest, without modifying anything.
func List(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("list requires a manifest path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	doc, err := manifest.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	switch format := cmd.String("format"); format {
	case "text":
		fmt.Printf("version %s\n", doc.Version)
		for _, dep := range doc.Dependencies {
			fmt.Printf("%s\t%s\t%s\n", dep.Name, dep.Path, dep.Version)
		}
		return nil
	case "toml":
		return toml.NewEncoder(os.Stdout).Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q (expected text, toml or yaml)", format)
	}
}
