package manifest

import "fmt"

// Kind is the descriptor type a candidate file is expected to be.
type Kind int

const (
	// PluginDescriptor is META-INF/plugin.xml with root <idea-plugin>.
	PluginDescriptor Kind = iota

	// ApplicationInfo is the application-info descriptor with root <component>.
	ApplicationInfo
)

// Root tags recognized per kind.
const (
	PluginRootTag          = "idea-plugin"
	ApplicationInfoRootTag = "component"
)

// DateLayout renders stamp dates as yyyyMMddHHmm.
const DateLayout = "200601021504"

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case PluginDescriptor:
		return "plugin"
	case ApplicationInfo:
		return "application-info"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RootTag returns the root element name legal for k.
func (k Kind) RootTag() string {
	if k == ApplicationInfo {
		return ApplicationInfoRootTag
	}
	return PluginRootTag
}

// PlatformField selects how the platform dependency is written into plugin
// descriptors.
type PlatformField int

const (
	// PlatformNone leaves the platform dependency alone.
	PlatformNone PlatformField = iota

	// PlatformVersionElement writes <platformVersion>value</platformVersion>.
	PlatformVersionElement

	// SinceBuildAttribute writes <idea-version since-build="value"/>.
	SinceBuildAttribute
)

// ParsePlatformField maps the config names to a PlatformField.
func ParsePlatformField(mode string) (PlatformField, error) {
	switch mode {
	case "", "none":
		return PlatformNone, nil
	case "platform-version":
		return PlatformVersionElement, nil
	case "since-build":
		return SinceBuildAttribute, nil
	default:
		return PlatformNone, fmt.Errorf("unknown platform mode %q", mode)
	}
}

// Fields are the values stamped during one pass.
type Fields struct {
	BuildNumber   string
	Platform      PlatformField
	PlatformValue string
	Date          string
}

// Outcome reports what Patch did to a document.
type Outcome int

const (
	// Patched means the document was mutated and re-serialized.
	Patched Outcome = iota

	// Skipped means the root tag did not match the expected kind.
	Skipped
)

func (o Outcome) String() string {
	if o == Skipped {
		return "skipped"
	}
	return "patched"
}
