// Package initialize implements the "init" command, which writes a starting
// .stamper.yaml from a template.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/indaco/stamper/internal/commands/cmdutil"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/printer"
	"github.com/indaco/stamper/internal/tui"
	"github.com/urfave/cli/v3"
)

// DefaultTemplate is used when no template is chosen.
const DefaultTemplate = "cold"

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Select(title, description string, options []huh.Option[string]) (string, error)
	Confirm(title, description string) (bool, error)
}

type tuiPrompter struct{}

func (tuiPrompter) Confirm(title, description string) (bool, error) {
	return tui.Confirm(title, description)
}

func (tuiPrompter) Select(title, description string, options []huh.Option[string]) (string, error) {
	return tui.Select(title, description, options)
}

// prompter and isInteractive are swapped out by tests.
var (
	prompter      Prompter = tuiPrompter{}
	isInteractive          = tui.IsInteractive
)

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a .stamper.yaml configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Template: " + strings.Join(TemplateNames(), ", "),
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Use defaults without prompting",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(cmd)
		},
	}
}

func runInitCmd(cmd *cli.Command) error {
	path := filepath.Join(cmd.String(cmdutil.FlagProjectDir), config.DefaultConfigFile)

	yes := cmd.Bool("yes")

	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		overwrite, err := confirmOverwrite(path, yes)
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	name, err := chooseTemplate(cmd.String("template"), yes)
	if err != nil {
		return err
	}
	tmpl, err := GetTemplate(name)
	if err != nil {
		return err
	}

	saver := config.NewConfigSaver(&commentedMarshaler{template: *tmpl}, nil, nil)
	if err := saver.SaveTo(tmpl.Config(), path); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s from the %s template", path, tmpl.Name))
	printer.PrintFaint("Run 'stamper validate' to check the project settings.")
	return nil
}

// confirmOverwrite asks before replacing an existing file. Without a terminal,
// or with --yes, the answer is no.
func confirmOverwrite(path string, yes bool) (bool, error) {
	if yes || !isInteractive() {
		return false, nil
	}
	ok, err := prompter.Confirm("Overwrite "+path+"?", "The existing configuration will be replaced.")
	if err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return ok, nil
}

// chooseTemplate returns the flag value, a prompted choice, or the default.
func chooseTemplate(flagValue string, yes bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if yes || !isInteractive() {
		return DefaultTemplate, nil
	}

	templates := AllTemplates()
	options := make([]huh.Option[string], len(templates))
	for i, t := range templates {
		options[i] = huh.NewOption(fmt.Sprintf("%-8s %s", t.Name, t.Description), t.Name)
	}

	name, err := prompter.Select("Choose a template", "Which build-helper generation does this project follow?", options)
	if err != nil {
		return "", fmt.Errorf("template selection cancelled: %w", err)
	}
	return name, nil
}
