// Package testutils holds helpers shared by command tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/stamper/internal/logging"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// BuildCLIForTests wraps commands in a root command carrying the global
// flags of the real CLI.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:                      "stamper",
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project-dir", Aliases: []string{"C"}, Value: "."},
			&cli.StringSliceFlag{Name: "define", Aliases: []string{"D"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
			&cli.BoolFlag{Name: "no-color"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return logging.WithLogger(ctx, zap.NewNop()), nil
		},
		Commands: commands,
	}
}

// RunCLITest runs args and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string) {
	t.Helper()
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs args and returns the error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string) error {
	t.Helper()
	return app.Run(context.Background(), args)
}

// CaptureStdout runs fn and returns what it wrote to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	out := <-done
	_ = r.Close()
	return string(out), nil
}

// WriteTempConfig writes content to a .stamper.yaml in a new temp dir and
// returns its path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".stamper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
