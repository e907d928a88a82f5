// Package cmdutil holds helpers shared by the stamper subcommands.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/printer"
	"github.com/indaco/stamper/internal/workspace"
	"github.com/urfave/cli/v3"
)

// Global flag names, declared on the root command and readable from every
// subcommand.
const (
	FlagProjectDir = "project-dir"
	FlagDefine     = "define"
	FlagVerbose    = "verbose"
	FlagNoColor    = "no-color"
)

// LoadWorkspace loads the workspace selected by the global flags.
func LoadWorkspace(ctx context.Context, cmd *cli.Command, fs core.FileSystem, cfg *config.Config) (*workspace.Workspace, error) {
	return workspace.Load(ctx, fs, cfg, workspace.Options{
		Dir:     cmd.String(FlagProjectDir),
		Defines: cmd.StringSlice(FlagDefine),
	})
}

// PrintValidationResults prints results grouped by category, in order.
func PrintValidationResults(results []config.ValidationResult) {
	category := ""
	for _, r := range results {
		if r.Category != category {
			if category != "" {
				fmt.Println()
			}
			category = r.Category
			printer.PrintBold(category)
		}

		switch {
		case r.Passed:
			printer.PrintItem(printer.MarkPass, r.Message)
		case r.Warning:
			printer.PrintItem(printer.MarkWarn, r.Message)
		default:
			printer.PrintItem(printer.MarkFail, r.Message)
		}
	}
}
