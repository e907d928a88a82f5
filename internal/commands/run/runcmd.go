package run

import (
	"context"
	"fmt"
	"slices"

	"github.com/indaco/stamper/internal/commands/cmdutil"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/discovery"
	"github.com/indaco/stamper/internal/logging"
	"github.com/indaco/stamper/internal/operations"
	"github.com/indaco/stamper/internal/preflight"
	"github.com/indaco/stamper/internal/printer"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Run returns the "run" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"stamp"},
		Usage:   "Stamp build metadata into compiled plugin descriptors",
		UsageText: `stamper run [options]

Checks the project settings, then writes the build number, platform value and
build date into every plugin descriptor and application-info descriptor found
in the module outputs. Nothing is stamped unless the project belongs to the
configured organization and the build number property is set:

  stamper -D cold.build.number=1560 run`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be stamped without writing files",
			},
			&cli.BoolFlag{
				Name:  "skip-preflight",
				Usage: "Do not check project settings before stamping",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStampCmd(ctx, cmd, cfg)
		},
	}
}

func runStampCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	logger := logging.FromContext(ctx)

	ws, err := cmdutil.LoadWorkspace(ctx, cmd, fs, cfg)
	if err != nil {
		return err
	}

	if cfg.PreflightEnabled() && !cmd.Bool("skip-preflight") {
		results := preflight.NewChecker(cfg.Preflight).Check(ws.Project)
		if err := preflight.Error(results); err != nil {
			cmdutil.PrintValidationResults(results)
			return err
		}
		logger.Debug("pre-flight passed", zap.Int("checks", len(results)))
	}

	op := operations.NewStampOperation(fs, cfg, cmd.Bool("dry-run"))
	report, err := op.Execute(ctx, ws.Project, ws.Metadata)
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func printReport(report *operations.Report) {
	if report.Gate != discovery.GateOpen {
		printer.PrintFaint(fmt.Sprintf("Nothing to stamp: %s", report.Gate))
		return
	}

	for _, e := range slices.Concat(report.Entries, report.Companions) {
		switch e.Status {
		case operations.StatusPatched:
			printer.PrintItem(printer.MarkPass, e.RelPath+" "+printer.Faint("("+e.Kind+")"))
		case operations.StatusSkipped:
			printer.PrintItem(printer.MarkSkip, e.RelPath+" "+printer.Faint("(root tag does not match "+e.Kind+")"))
		case operations.StatusFailed:
			printer.PrintItem(printer.MarkFail, fmt.Sprintf("%s: %v", e.RelPath, e.Err))
		}
	}

	patched := report.Count(operations.StatusPatched)
	verb := "Stamped"
	if report.DryRun {
		verb = "Would stamp"
	}
	summary := fmt.Sprintf("%s %d file(s) with build %s", verb, patched, printer.Bold(report.Metadata.BuildNumber))
	if report.Metadata.PlatformValue != "" {
		summary += fmt.Sprintf(", platform %s", report.Metadata.PlatformValue)
	}

	switch {
	case report.Count(operations.StatusFailed) > 0:
		printer.PrintWarning(fmt.Sprintf("%s (%d failed)", summary, report.Count(operations.StatusFailed)))
	case patched == 0:
		printer.PrintFaint(summary)
	default:
		printer.PrintSuccess(summary)
	}
}
