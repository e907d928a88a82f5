package discovery

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
	"github.com/indaco/stamper/internal/manifest"
	"github.com/indaco/stamper/internal/project"
)

const (
	pluginXML  = "<idea-plugin>\n  <version>1</version>\n</idea-plugin>\n"
	appInfoXML = "<component>\n  <build number=\"1\" date=\"201501010000\"/>\n</component>\n"
)

func testProject(name string) *project.Project {
	return &project.Project{
		Name:         name,
		Dir:          "/p",
		Organization: "consulo",
		Modules: []project.Module{
			{Name: "core", OutputDir: "/p/out/core", ResourceOutputDir: "/p/out/core-res"},
			{Name: "shared", OutputDir: "/p/out/shared", ResourceOutputDir: "/p/out/shared"},
			{Name: "empty", OutputDir: "/p/out/empty", ResourceOutputDir: "/p/out/empty"},
			{Name: "no-roots"},
		},
	}
}

func testFS() *core.MockFileSystem {
	fs := core.NewMockFileSystem()
	fs.SetFile("/p/out/core-res/META-INF/plugin.xml", []byte(pluginXML))
	fs.SetFile("/p/out/core-res/idea/ConsuloApplicationInfo.xml", []byte(appInfoXML))
	fs.SetFile("/p/out/core/META-INF/plugin.xml", []byte(pluginXML))
	fs.SetFile("/p/out/shared/META-INF/plugin.xml", []byte(pluginXML))
	fs.SetFile("/p/out/empty/Foo.class", []byte{0xCA})
	return fs
}

func TestService_Enumerate_LocationOrder(t *testing.T) {
	svc := NewService(testFS(), config.Default())

	result, err := svc.Enumerate(context.Background(), testProject("consulo-java"), "1560")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	want := []Candidate{
		{Module: "core", Path: "/p/out/core-res/META-INF/plugin.xml", RelPath: "out/core-res/META-INF/plugin.xml",
			Kind: manifest.PluginDescriptor, Root: RootResourceOutput},
		{Module: "core", Path: "/p/out/core-res/idea/ConsuloApplicationInfo.xml", RelPath: "out/core-res/idea/ConsuloApplicationInfo.xml",
			Kind: manifest.ApplicationInfo, Root: RootResourceOutput},
		{Module: "core", Path: "/p/out/core/META-INF/plugin.xml", RelPath: "out/core/META-INF/plugin.xml",
			Kind: manifest.PluginDescriptor, Root: RootOutput},
		{Module: "shared", Path: "/p/out/shared/META-INF/plugin.xml", RelPath: "out/shared/META-INF/plugin.xml",
			Kind: manifest.PluginDescriptor, Root: RootResourceOutput},
	}
	if result.Gate != GateOpen {
		t.Errorf("Gate = %v, want open", result.Gate)
	}
	if diff := cmp.Diff(want, result.Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Enumerate_Gate(t *testing.T) {
	tests := []struct {
		name        string
		project     string
		buildNumber string
		wantGate    Gate
	}{
		{"outside organization", "my-plugin", "1560", GateOutsideOrganization},
		{"no build number", "consulo-java", "", GateNoBuildNumber},
		{"outside organization wins", "my-plugin", "", GateOutsideOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testFS(), nil)
			result, err := svc.Enumerate(context.Background(), testProject(tt.project), tt.buildNumber)
			if err != nil {
				t.Fatalf("Enumerate: %v", err)
			}
			if !result.IsEmpty() {
				t.Errorf("expected no candidates, got %d", len(result.Candidates))
			}
			if result.Gate != tt.wantGate {
				t.Errorf("Gate = %v, want %v", result.Gate, tt.wantGate)
			}
		})
	}
}

func TestService_Enumerate_ApplicationInfoDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Stamp.ApplicationInfo = "none"

	result, err := NewService(testFS(), cfg).Enumerate(context.Background(), testProject("consulo"), "1")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for _, c := range result.Candidates {
		if c.Kind == manifest.ApplicationInfo {
			t.Errorf("unexpected application-info candidate %s", c.RelPath)
		}
	}
	if len(result.Candidates) != 3 {
		t.Errorf("len(Candidates) = %d, want 3", len(result.Candidates))
	}
}

func TestService_Enumerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewService(testFS(), nil).Enumerate(ctx, testProject("consulo"), "1"); err == nil {
		t.Error("expected context error")
	}
}

func TestService_Inspect(t *testing.T) {
	fs := testFS()
	fs.SetFile("/p/out/shared/META-INF/plugin.xml", []byte("<idea-plugin><version>"))
	svc := NewService(fs, nil)

	result, err := svc.Enumerate(context.Background(), testProject("consulo"), "2")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	entries, err := svc.Inspect(context.Background(), result.Candidates)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}

	for _, e := range entries[:3] {
		if e.Err != nil || e.Info == nil {
			t.Errorf("%s: unexpected failure %v", e.RelPath, e.Err)
		}
	}
	if entries[3].Err == nil {
		t.Error("expected parse error for malformed descriptor")
	}

	mismatches := DetectMismatches(entries, "2")
	if len(mismatches) != 3 {
		t.Fatalf("len(mismatches) = %d, want 3: %+v", len(mismatches), mismatches)
	}
	if mismatches[0].Source != "out/core-res/META-INF/plugin.xml" || mismatches[0].ActualVersion != "1" {
		t.Errorf("unexpected first mismatch: %+v", mismatches[0])
	}
}

func TestService_EnumerateAll_IgnoresGate(t *testing.T) {
	candidates, err := NewService(testFS(), nil).EnumerateAll(context.Background(), testProject("my-plugin"))
	if err != nil {
		t.Fatalf("EnumerateAll: %v", err)
	}
	if len(candidates) != 4 {
		t.Errorf("len(candidates) = %d, want 4", len(candidates))
	}
}
