// Package validate implements the "validate" command, which checks the
// configuration and the project settings without touching any descriptor.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/stamper/internal/commands/cmdutil"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/preflight"
	"github.com/indaco/stamper/internal/printer"
	"github.com/indaco/stamper/internal/tui"
	"github.com/indaco/stamper/internal/workspace"
	"github.com/urfave/cli/v3"
)

// Run returns the "validate" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"doctor", "check"},
		Usage:   "Check configuration and project settings",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidateCmd(ctx, cmd, cfg)
		},
	}
}

func runValidateCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := core.NewOSFileSystem()
	dir := cmd.String(cmdutil.FlagProjectDir)

	results, err := config.NewValidator(fs, cfg, dir).Validate(ctx)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if cfg.Theme != "" && !tui.IsValidTheme(cfg.Theme) {
		results = append(results, config.ValidationResult{Category: "Theme", Warning: true,
			Message: fmt.Sprintf("unknown theme %q, using the default (available: %s)", cfg.Theme, strings.Join(tui.ValidThemes, ", "))})
	}

	ws, err := cmdutil.LoadWorkspace(ctx, cmd, fs, cfg)
	if err != nil {
		results = append(results, config.ValidationResult{Category: "Project", Message: err.Error()})
	} else {
		results = append(results, projectResults(ws)...)
		if cfg.PreflightEnabled() {
			results = append(results, preflight.NewChecker(cfg.Preflight).Check(ws.Project)...)
		} else {
			results = append(results, config.ValidationResult{
				Category: preflight.Category, Passed: true, Message: "Disabled in configuration",
			})
		}
	}

	cmdutil.PrintValidationResults(results)
	fmt.Println()

	errCount := config.ErrorCount(results)
	warnings := config.WarningCount(results)
	if errCount > 0 {
		printer.PrintError(fmt.Sprintf("%d error(s), %d warning(s)", errCount, warnings))
		return fmt.Errorf("validation failed with %d error(s)", errCount)
	}
	printer.PrintSuccess(fmt.Sprintf("Configuration valid, %d warning(s)", warnings))
	return nil
}

// projectResults reports what a stamp pass would see.
func projectResults(ws *workspace.Workspace) []config.ValidationResult {
	const category = "Project"
	results := []config.ValidationResult{
		{Category: category, Passed: true, Message: fmt.Sprintf("Project %q in %s", ws.Project.Name, ws.Project.Dir)},
	}

	if ws.Project.InOrganization() {
		results = append(results, config.ValidationResult{Category: category, Passed: true,
			Message: fmt.Sprintf("Belongs to organization %q", ws.Project.Organization)})
	} else {
		results = append(results, config.ValidationResult{Category: category, Warning: true,
			Message: fmt.Sprintf("Not in organization %q: nothing will be stamped", ws.Project.Organization)})
	}

	if len(ws.Project.Modules) == 0 {
		results = append(results, config.ValidationResult{Category: category, Warning: true, Message: "No modules found"})
	} else {
		results = append(results, config.ValidationResult{Category: category, Passed: true,
			Message: fmt.Sprintf("%d module(s)", len(ws.Project.Modules))})
	}

	prop := ws.Config.Stamp.BuildNumberProperty
	if ws.Metadata.Configured() {
		results = append(results, config.ValidationResult{Category: category, Passed: true,
			Message: fmt.Sprintf("Build number %s (%s)", ws.Metadata.BuildNumber, prop)})
	} else {
		results = append(results, config.ValidationResult{Category: category, Warning: true,
			Message: fmt.Sprintf("%s is not set (-D %s=..., or $%s): nothing will be stamped", prop, prop, config.EnvName(prop))})
	}

	return results
}
