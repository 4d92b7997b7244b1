package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/scanexplorer/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    "scanexplorer",
		Usage:   "Search API over scanned journal volumes",
		Version: version.Version,
		Commands: []*cli.Command{
			serveCommand(),
			compileCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
