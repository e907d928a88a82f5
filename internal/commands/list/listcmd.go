package list

import (
	"context"

	"github.com/indaco/stamper/internal/commands/cmdutil"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/discovery"
	"github.com/indaco/stamper/internal/workspace"
	"github.com/urfave/cli/v3"
)

// Run returns the "list" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the descriptors a stamp pass would touch",
		UsageText: `stamper list [options]

Shows every plugin and application-info descriptor found in the module
outputs with its currently stamped values. Descriptors are only listed when
the stamp gate is open; use --all to list them regardless.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "List descriptors even when the project is not eligible for stamping",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runListCmd(ctx, cmd, cfg)
		},
	}
}

func runListCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()

	ws, err := cmdutil.LoadWorkspace(ctx, cmd, fs, cfg)
	if err != nil {
		return err
	}

	listing, err := buildListing(ctx, discovery.NewService(fs, cfg), ws, cmd.Bool("all"))
	if err != nil {
		return err
	}

	NewFormatter(ParseOutputFormat(cmd.String("format"))).Print(listing)
	return nil
}

// buildListing enumerates and inspects the descriptors of ws. With all set
// the gate is reported but not applied.
func buildListing(ctx context.Context, svc *discovery.Service, ws *workspace.Workspace, all bool) (*Listing, error) {
	build := ws.Metadata.BuildNumber

	result, err := svc.Enumerate(ctx, ws.Project, build)
	if err != nil {
		return nil, err
	}

	candidates := result.Candidates
	if all && result.Gate != discovery.GateOpen {
		if candidates, err = svc.EnumerateAll(ctx, ws.Project); err != nil {
			return nil, err
		}
	}

	entries, err := svc.Inspect(ctx, candidates)
	if err != nil {
		return nil, err
	}

	return &Listing{
		Project:     ws.Project.Name,
		Gate:        result.Gate,
		BuildNumber: build,
		Entries:     entries,
		Mismatches:  discovery.DetectMismatches(entries, build),
	}, nil
}
