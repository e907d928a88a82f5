package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

/* ------------------------------------------------------------------------- */
/* MOCK IMPLEMENTATIONS FOR TESTING                                          */
/* ------------------------------------------------------------------------- */

type mockMarshaler struct {
	marshalErr error
}

func (m *mockMarshaler) Marshal(v any) ([]byte, error) {
	if m.marshalErr != nil {
		return nil, m.marshalErr
	}
	return []byte("project:\n  name: mock\n"), nil
}

type mockFileOpener struct {
	openFileErr error
}

func (m *mockFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	if m.openFileErr != nil {
		return nil, m.openFileErr
	}
	return os.OpenFile(name, flag, perm)
}

type mockFileWriter struct {
	writeFileErr error
}

func (m *mockFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	if m.writeFileErr != nil {
		return 0, m.writeFileErr
	}
	return file.Write(data)
}

/* ------------------------------------------------------------------------- */
/* SAVE CONFIG                                                               */
/* ------------------------------------------------------------------------- */

func TestConfigSaver_SaveTo(t *testing.T) {
	tests := []struct {
		name      string
		marshaler *mockMarshaler
		opener    *mockFileOpener
		writer    *mockFileWriter
		wantErr   string
	}{
		{name: "default dependencies"},
		{name: "custom marshaler", marshaler: &mockMarshaler{}},
		{name: "marshal failure", marshaler: &mockMarshaler{marshalErr: errors.New("boom")}, wantErr: "failed to marshal config"},
		{name: "open failure", opener: &mockFileOpener{openFileErr: errors.New("permission denied")}, wantErr: "failed to open config file"},
		{name: "write failure", writer: &mockFileWriter{writeFileErr: errors.New("disk full")}, wantErr: "failed to write config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFile)

			// Typed nil pointers would not reach the nil checks in NewConfigSaver.
			var (
				m interface{ Marshal(any) ([]byte, error) }
				o FileOpener
				w FileWriter
			)
			if tt.marshaler != nil {
				m = tt.marshaler
			}
			if tt.opener != nil {
				o = tt.opener
			}
			if tt.writer != nil {
				w = tt.writer
			}

			cfg := Default()
			cfg.Project.Name = "consulo-java"
			err := NewConfigSaver(m, o, w).SaveTo(cfg, path)

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("SaveTo() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != ConfigFilePerm {
				t.Errorf("perm = %o, want %o", info.Mode().Perm(), ConfigFilePerm)
			}
			if tt.marshaler == nil {
				loaded, err := LoadFile(path)
				if err != nil {
					t.Fatalf("LoadFile() error = %v", err)
				}
				if loaded.Project.Name != "consulo-java" {
					t.Errorf("round trip lost project name: %q", loaded.Project.Name)
				}
			}
		})
	}
}

func TestSaveConfigFn(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := SaveConfigFn(Default(), path); err != nil {
		t.Fatalf("SaveConfigFn() error = %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("saved default config does not load: %v", err)
	}
}
