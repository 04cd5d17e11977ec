package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/internal/version"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "hmaptool",
		Usage:   "Inspect, export and edit HMAP heightmap containers",
		Version: version.String(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			exportCmd(),
			updateCmd(),
			hexToPNGCmd(),
			pngToHexCmd(),
			versionCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
