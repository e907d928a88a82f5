// Package buildinfo resolves the values stamped during one pass: the build
// number, the platform value and the stamp date.
package buildinfo

import (
	"fmt"
	"time"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/manifest"
	"github.com/indaco/stamper/internal/sdk"
)

// Where a platform value came from.
const (
	SourceProperty = "property"
	SourceSDK      = "sdk"
	SourceFallback = "fallback"
)

// Metadata is the read-only input of a stamp pass.
type Metadata struct {
	BuildNumber string

	Platform       manifest.PlatformField
	PlatformValue  string
	PlatformSource string

	Date time.Time
}

// Configured reports whether a build number is available. Without one
// nothing is stamped.
func (m *Metadata) Configured() bool {
	return m.BuildNumber != ""
}

// Fields returns the values handed to the manifest patcher.
func (m *Metadata) Fields() manifest.Fields {
	return manifest.Fields{
		BuildNumber:   m.BuildNumber,
		Platform:      m.Platform,
		PlatformValue: m.PlatformValue,
		Date:          m.Date.Format(manifest.DateLayout),
	}
}

// Resolver reads Metadata from build properties and the SDK table.
type Resolver struct {
	props *config.Properties
	sdks  *sdk.Table
	now   func() time.Time
}

// NewResolver creates a Resolver. A nil table behaves as an empty one and a
// nil clock uses time.Now.
func NewResolver(props *config.Properties, sdks *sdk.Table, now func() time.Time) *Resolver {
	if sdks == nil {
		sdks = sdk.NewTable()
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{props: props, sdks: sdks, now: now}
}

// Resolve computes the metadata for cfg.
func (r *Resolver) Resolve(cfg *config.Config) (*Metadata, error) {
	platform, err := manifest.ParsePlatformField(cfg.PlatformMode())
	if err != nil {
		return nil, fmt.Errorf("invalid stamp config: %w", err)
	}

	md := &Metadata{
		Platform: platform,
		Date:     r.now(),
	}
	md.BuildNumber, _ = r.props.Get(cfg.Stamp.BuildNumberProperty)

	if platform != manifest.PlatformNone {
		md.PlatformValue, md.PlatformSource = r.platformValue(cfg.Stamp.Platform)
	}
	return md, nil
}

func (r *Resolver) platformValue(p *config.PlatformConfig) (string, string) {
	if v, ok := r.props.Get(p.Property); ok {
		return v, SourceProperty
	}
	if p.SDK != "" {
		if v := r.sdks.VersionOf(p.SDK, ""); v != "" {
			return v, SourceSDK
		}
	}
	return p.Fallback, SourceFallback
}
