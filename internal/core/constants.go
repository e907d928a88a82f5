package core

import "os"

// FileMode is the permission type accepted by FileSystem.WriteFile.
type FileMode = os.FileMode

const (
	// PermOwnerRW is used for files stamper creates itself (config files).
	PermOwnerRW FileMode = 0o600

	// PermDefaultFile is applied when rewriting a file whose mode is unknown.
	PermDefaultFile FileMode = 0o644
)

// Marshaler serializes configuration values.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
