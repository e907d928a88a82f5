package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/stamper/internal/core"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".stamper.yaml"

// Platform modes select which platform field is stamped into plugin descriptors.
const (
	PlatformNone    = "none"
	PlatformVersion = "platform-version"
	PlatformSince   = "since-build"
)

// Defaults mirror the most recent build-helper generation.
const (
	DefaultOrganization        = "consulo"
	DefaultBuildNumberProperty = "cold.build.number"
	DefaultPluginDescriptor    = "META-INF/plugin.xml"
	DefaultApplicationInfo     = "idea/ConsuloApplicationInfo.xml"
	DefaultPlatformSDK         = "Consulo SNAPSHOT"
	DefaultPlatformFallback    = "SNAPSHOT"
	DefaultSettingsDir         = ".idea"
	DefaultOutputRoot          = "out/production"
	DefaultPluginExtension     = "consulo-plugin"
)

// Config is the main configuration structure for stamper.
type Config struct {
	Project    ProjectConfig     `yaml:"project"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Stamp      StampConfig       `yaml:"stamp"`
	Modules    []ModuleConfig    `yaml:"modules,omitempty"`
	Discovery  *DiscoveryConfig  `yaml:"discovery,omitempty"`
	SDKs       *SDKConfig        `yaml:"sdks,omitempty"`
	Preflight  *PreflightConfig  `yaml:"preflight,omitempty"`
	Companions []CompanionConfig `yaml:"companions,omitempty"`

	// Theme names the prompt theme used by interactive commands.
	Theme string `yaml:"theme,omitempty"`
}

// ProjectConfig identifies the project and the organization gate.
type ProjectConfig struct {
	// Name overrides the detected project name.
	Name string `yaml:"name,omitempty"`

	// Organization is the required project name prefix.
	Organization string `yaml:"organization"`

	// SettingsDir holds the IDE project settings (compiler.xml and friends).
	SettingsDir string `yaml:"settings-dir,omitempty"`

	// Settings overrides values read from SettingsDir.
	Settings *SettingsConfig `yaml:"settings,omitempty"`
}

// SettingsConfig overrides IDE compiler and UI designer settings.
type SettingsConfig struct {
	BytecodeTarget    *string `yaml:"bytecode-target,omitempty"`
	NotNullAssertions *bool   `yaml:"not-null-assertions,omitempty"`
	CopyFormsRuntime  *bool   `yaml:"copy-forms-runtime,omitempty"`
	CopyForms         *bool   `yaml:"copy-forms,omitempty"`
}

// StampConfig selects which fields are stamped and where values come from.
type StampConfig struct {
	BuildNumberProperty string          `yaml:"build-number-property"`
	PluginDescriptor    string          `yaml:"plugin-descriptor,omitempty"`
	ApplicationInfo     string          `yaml:"application-info,omitempty"` // "none" disables
	Platform            *PlatformConfig `yaml:"platform,omitempty"`
}

// PlatformConfig describes the platform dependency field of plugin descriptors.
type PlatformConfig struct {
	Mode     string `yaml:"mode"`
	Property string `yaml:"property,omitempty"`
	SDK      string `yaml:"sdk,omitempty"`
	Fallback string `yaml:"fallback,omitempty"`
}

// ModuleConfig declares a module and its compiled output roots.
type ModuleConfig struct {
	Name           string `yaml:"name"`
	Output         string `yaml:"output,omitempty"`
	ResourceOutput string `yaml:"resource-output,omitempty"`
	SDK            string `yaml:"sdk,omitempty"`
	Iml            string `yaml:"iml,omitempty"`
}

// DiscoveryConfig controls module auto-discovery below an output root.
type DiscoveryConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	OutputRoot   string   `yaml:"output-root,omitempty"`
	ResourceRoot string   `yaml:"resource-root,omitempty"`
	Exclude      []string `yaml:"exclude,omitempty"`
}

// SDKConfig lists known SDKs and an optional IDE SDK table file.
type SDKConfig struct {
	Table   string     `yaml:"table,omitempty"`
	Entries []SDKEntry `yaml:"entries,omitempty"`
}

// SDKEntry is a named SDK with its version string.
type SDKEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// PreflightConfig holds the toolchain policy checked before stamping.
type PreflightConfig struct {
	Enabled                  *bool             `yaml:"enabled,omitempty"`
	BytecodeTargets          []string          `yaml:"bytecode-targets,omitempty"`
	RequireNotNullAssertions *bool             `yaml:"require-not-null-assertions,omitempty"`
	ForbidFormsRuntimeCopy   *bool             `yaml:"forbid-forms-runtime-copy,omitempty"`
	RequireFormsCopy         *bool             `yaml:"require-forms-copy,omitempty"`
	PluginExtension          string            `yaml:"plugin-extension,omitempty"`
	ObsoleteSDKs             map[string]string `yaml:"obsolete-sdks,omitempty"`
}

// CompanionConfig is an extra manifest that receives the build number.
type CompanionConfig struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format"`
	Field   string `yaml:"field,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Project.Organization == "" {
		c.Project.Organization = DefaultOrganization
	}
	if c.Project.SettingsDir == "" {
		c.Project.SettingsDir = DefaultSettingsDir
	}
	if c.Stamp.BuildNumberProperty == "" {
		c.Stamp.BuildNumberProperty = DefaultBuildNumberProperty
	}
	if c.Stamp.PluginDescriptor == "" {
		c.Stamp.PluginDescriptor = DefaultPluginDescriptor
	}
	if c.Stamp.ApplicationInfo == "" {
		c.Stamp.ApplicationInfo = DefaultApplicationInfo
	}
	if c.Stamp.Platform == nil {
		c.Stamp.Platform = &PlatformConfig{Mode: PlatformVersion, SDK: DefaultPlatformSDK}
	}
	if c.Stamp.Platform.Mode == "" {
		c.Stamp.Platform.Mode = PlatformNone
	}
	if c.Stamp.Platform.Fallback == "" {
		c.Stamp.Platform.Fallback = DefaultPlatformFallback
	}
	if c.Discovery == nil {
		c.Discovery = &DiscoveryConfig{}
	}
	if c.Discovery.OutputRoot == "" {
		c.Discovery.OutputRoot = DefaultOutputRoot
	}
	if c.SDKs == nil {
		c.SDKs = &SDKConfig{}
	}
	if c.Preflight == nil {
		c.Preflight = &PreflightConfig{}
	}
	if len(c.Preflight.BytecodeTargets) == 0 {
		c.Preflight.BytecodeTargets = []string{"1.6", "1.8"}
	}
	if c.Preflight.PluginExtension == "" {
		c.Preflight.PluginExtension = DefaultPluginExtension
	}
	if c.Preflight.ObsoleteSDKs == nil {
		c.Preflight.ObsoleteSDKs = map[string]string{"Consulo 1.SNAPSHOT": DefaultPlatformSDK}
	}
}

// DiscoveryEnabled reports whether output-root auto-discovery runs.
func (c *Config) DiscoveryEnabled() bool {
	return c.Discovery == nil || c.Discovery.Enabled == nil || *c.Discovery.Enabled
}

// PreflightEnabled reports whether pre-flight checks run.
func (c *Config) PreflightEnabled() bool {
	return c.Preflight == nil || c.Preflight.Enabled == nil || *c.Preflight.Enabled
}

// ApplicationInfoPath returns the relative application-info path, or "" when
// application-info stamping is disabled with "none".
func (c *Config) ApplicationInfoPath() string {
	if c.Stamp.ApplicationInfo == PlatformNone {
		return ""
	}
	return c.Stamp.ApplicationInfo
}

// PlatformMode returns the configured platform mode, PlatformNone when unset.
func (c *Config) PlatformMode() string {
	if c.Stamp.Platform == nil || c.Stamp.Platform.Mode == "" {
		return PlatformNone
	}
	return c.Stamp.Platform.Mode
}

// boolOr dereferences p, returning def when p is nil.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// RequireNotNull reports whether @NotNull instrumentation must be on.
func (p *PreflightConfig) RequireNotNull() bool { return boolOr(p.RequireNotNullAssertions, true) }

// ForbidRuntimeCopy reports whether copying the forms runtime must be off.
func (p *PreflightConfig) ForbidRuntimeCopy() bool { return boolOr(p.ForbidFormsRuntimeCopy, true) }

// RequireCopy reports whether copying forms to output must be on.
func (p *PreflightConfig) RequireCopy() bool { return boolOr(p.RequireFormsCopy, true) }

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are swapped out by tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config, path string) error {
		return defaultConfigSaver.SaveTo(cfg, path)
	}
)

// ConfigPath returns the config file to load: STAMPER_CONFIG when set,
// DefaultConfigFile otherwise.
func ConfigPath() (string, error) {
	envPath := os.Getenv("STAMPER_CONFIG")
	if envPath == "" {
		return DefaultConfigFile, nil
	}
	cleanPath := filepath.Clean(envPath)
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("invalid STAMPER_CONFIG: path traversal not allowed, use absolute path instead")
	}
	return cleanPath, nil
}

func loadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile decodes the config at path strictly and applies defaults.
// A missing file yields Default().
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data strictly and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW
