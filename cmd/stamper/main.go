package main

import (
	"context"
	"os"

	"github.com/indaco/stamper/internal/cli"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the command tree with args.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
