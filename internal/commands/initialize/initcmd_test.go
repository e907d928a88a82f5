package initialize

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/testutils"
	"github.com/urfave/cli/v3"
)

type fakePrompter struct {
	choice    string
	err       error
	called    bool
	options   []huh.Option[string]
	confirm   bool
	confirmed bool
}

func (f *fakePrompter) Confirm(title, description string) (bool, error) {
	f.confirmed = true
	return f.confirm, f.err
}

func (f *fakePrompter) Select(title, description string, options []huh.Option[string]) (string, error) {
	f.called = true
	f.options = options
	return f.choice, f.err
}

func withPrompt(t *testing.T, interactive bool, p Prompter) {
	t.Helper()
	origPrompter, origInteractive := prompter, isInteractive
	prompter = p
	isInteractive = func() bool { return interactive }
	t.Cleanup(func() {
		prompter = origPrompter
		isInteractive = origInteractive
	})
}

func TestCLI_InitCommand_Template(t *testing.T) {
	withPrompt(t, false, &fakePrompter{})
	dir := t.TempDir()
	app := testutils.BuildCLIForTests([]*cli.Command{Run()})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{"stamper", "-C", dir, "init", "--template", "vulcan"})
	})
	if err != nil {
		t.Fatalf("Failed to capture stdout: %v", err)
	}
	if !strings.Contains(output, "from the vulcan template") {
		t.Errorf("unexpected output: %q", output)
	}

	path := filepath.Join(dir, config.DefaultConfigFile)
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Stamp.BuildNumberProperty != "vulcan.build.number" {
		t.Errorf("BuildNumberProperty = %q, want vulcan.build.number", cfg.Stamp.BuildNumberProperty)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != config.ConfigFilePerm {
		t.Errorf("perm = %o, want %o", perm, config.ConfigFilePerm)
	}
}

func TestCLI_InitCommand_RefusesOverwrite(t *testing.T) {
	withPrompt(t, false, &fakePrompter{})
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, config.DefaultConfigFile, "project:\n  name: keep\n")
	app := testutils.BuildCLIForTests([]*cli.Command{Run()})

	err := testutils.RunCLITestAllowError(t, app, []string{"stamper", "-C", dir, "init", "--yes"})
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if got := testutils.ReadFile(t, path); got != "project:\n  name: keep\n" {
		t.Errorf("existing file modified: %q", got)
	}

	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{"stamper", "-C", dir, "init", "--yes", "--force"})
	})
	if got := testutils.ReadFile(t, path); !strings.Contains(got, "# Template: cold") {
		t.Errorf("expected cold template after --force, got:\n%s", got)
	}
}

func TestCLI_InitCommand_InteractiveOverwrite(t *testing.T) {
	tests := []struct {
		name      string
		confirm   bool
		wantErr   bool
		wantWrite bool
	}{
		{name: "accepted", confirm: true, wantWrite: true},
		{name: "declined", confirm: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePrompter{confirm: tt.confirm, choice: "minimal"}
			withPrompt(t, true, p)
			dir := t.TempDir()
			path := testutils.WriteFile(t, dir, config.DefaultConfigFile, "project:\n  name: keep\n")
			app := testutils.BuildCLIForTests([]*cli.Command{Run()})

			var err error
			_, _ = testutils.CaptureStdout(func() {
				err = testutils.RunCLITestAllowError(t, app, []string{"stamper", "-C", dir, "init"})
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("init error = %v, wantErr %v", err, tt.wantErr)
			}
			if !p.confirmed {
				t.Error("expected overwrite confirmation prompt")
			}

			got := testutils.ReadFile(t, path)
			if written := strings.Contains(got, "# Template: minimal"); written != tt.wantWrite {
				t.Errorf("file rewritten = %v, want %v:\n%s", written, tt.wantWrite, got)
			}
		})
	}
}

func TestCLI_InitCommand_UnknownTemplate(t *testing.T) {
	withPrompt(t, false, &fakePrompter{})
	dir := t.TempDir()
	app := testutils.BuildCLIForTests([]*cli.Command{Run()})

	err := testutils.RunCLITestAllowError(t, app, []string{"stamper", "-C", dir, "init", "-t", "legacy"})
	if err == nil || !strings.Contains(err.Error(), `unknown template "legacy"`) {
		t.Fatalf("expected unknown template error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, config.DefaultConfigFile)); !os.IsNotExist(statErr) {
		t.Error("config file should not be created")
	}
}

func TestChooseTemplate(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		yes         bool
		interactive bool
		prompter    *fakePrompter
		want        string
		wantPrompt  bool
		wantErr     bool
	}{
		{name: "flag wins", flag: "minimal", interactive: true, prompter: &fakePrompter{choice: "vulcan"}, want: "minimal"},
		{name: "yes skips prompt", yes: true, interactive: true, prompter: &fakePrompter{choice: "vulcan"}, want: DefaultTemplate},
		{name: "non-interactive default", prompter: &fakePrompter{choice: "vulcan"}, want: DefaultTemplate},
		{name: "prompted", interactive: true, prompter: &fakePrompter{choice: "vulcan"}, want: "vulcan", wantPrompt: true},
		{name: "prompt aborted", interactive: true, prompter: &fakePrompter{err: huh.ErrUserAborted}, wantPrompt: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withPrompt(t, tt.interactive, tt.prompter)

			got, err := chooseTemplate(tt.flag, tt.yes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("chooseTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, huh.ErrUserAborted) {
				t.Errorf("error should wrap the prompt error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("chooseTemplate() = %q, want %q", got, tt.want)
			}
			if tt.prompter.called != tt.wantPrompt {
				t.Errorf("prompted = %v, want %v", tt.prompter.called, tt.wantPrompt)
			}
			if tt.wantPrompt && len(tt.prompter.options) != len(AllTemplates()) {
				t.Errorf("got %d options, want %d", len(tt.prompter.options), len(AllTemplates()))
			}
		})
	}
}
