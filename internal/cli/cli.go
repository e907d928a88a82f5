package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/stamper/internal/commands/cmdutil"
	"github.com/indaco/stamper/internal/commands/initialize"
	"github.com/indaco/stamper/internal/commands/list"
	"github.com/indaco/stamper/internal/commands/run"
	"github.com/indaco/stamper/internal/commands/validate"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/logging"
	"github.com/indaco/stamper/internal/printer"
	"github.com/indaco/stamper/internal/tui"
	"github.com/indaco/stamper/internal/version"
	urfavecli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the stamper cli.
//
// cfg is shared with the subcommands; when --project-dir points elsewhere
// and STAMPER_CONFIG is unset, Before replaces it with that project's
// .stamper.yaml.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                      "stamper",
		Version:                   fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                     "Stamp build metadata into compiled plugin descriptors",
		EnableShellCompletion:     true,
		DisableSliceFlagSeparator: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:    cmdutil.FlagProjectDir,
				Aliases: []string{"C"},
				Usage:   "Project directory",
				Value:   ".",
			},
			&urfavecli.StringSliceFlag{
				Name:    cmdutil.FlagDefine,
				Aliases: []string{"D"},
				Usage:   "Build property as key=value (repeatable)",
			},
			&urfavecli.BoolFlag{
				Name:    cmdutil.FlagVerbose,
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&urfavecli.BoolFlag{
				Name:  cmdutil.FlagNoColor,
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool(cmdutil.FlagNoColor))

			logger, err := logging.New(cmd.Bool(cmdutil.FlagVerbose))
			if err != nil {
				return ctx, err
			}
			ctx = logging.WithLogger(ctx, logger)

			if err := reloadForProjectDir(ctx, cmd.String(cmdutil.FlagProjectDir), cfg); err != nil {
				return ctx, err
			}
			tui.SetTheme(cfg.Theme)
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *urfavecli.Command) error {
			_ = logging.FromContext(ctx).Sync()
			return nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			run.Run(cfg),
			list.Run(cfg),
			validate.Run(cfg),
		},
	}
}

// reloadForProjectDir loads <dir>/.stamper.yaml into cfg when dir is not the
// working directory and no explicit config file was requested.
func reloadForProjectDir(ctx context.Context, dir string, cfg *config.Config) error {
	if os.Getenv("STAMPER_CONFIG") != "" || filepath.Clean(dir) == "." {
		return nil
	}

	path := filepath.Join(dir, config.DefaultConfigFile)
	loaded, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("loaded project config", zap.String("path", path))
	*cfg = *loaded
	return nil
}
