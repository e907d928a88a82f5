package sdk

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/stamper/internal/config"
	"github.com/indaco/stamper/internal/core"
)

const tableXML = `<application>
  <component name="ProjectJdkTable">
    <jdk version="2">
      <name value="11" />
      <type value="JavaSDK" />
      <version value="java version &quot;11&quot;" />
    </jdk>
    <sdk version="2">
      <name value="Consulo SNAPSHOT" />
      <type value="CONSULO_SDK" />
      <version value="2.0.1234" />
    </sdk>
    <sdk version="2">
      <name value="Consulo 1.SNAPSHOT" />
    </sdk>
  </component>
</application>`

func TestLoad_FromTableFile(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/opt/options/sdk.table.xml", []byte(tableXML))

	table, err := Load(context.Background(), fs, "/opt/options/sdk.table.xml", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("Len = %d, want 3", table.Len())
	}

	tests := []struct {
		name string
		want string
	}{
		{"Consulo SNAPSHOT", "2.0.1234"},
		{"11", `java version "11"`},
		{"Consulo 1.SNAPSHOT", "SNAPSHOT"},
		{"unknown", "SNAPSHOT"},
	}
	for _, tt := range tests {
		if got := table.VersionOf(tt.name, "SNAPSHOT"); got != tt.want {
			t.Errorf("VersionOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLoad_ConfigEntriesWin(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/sdk.table.xml", []byte(tableXML))

	table, err := Load(context.Background(), fs, "/sdk.table.xml", []config.SDKEntry{
		{Name: "Consulo SNAPSHOT", Version: "3.0.0"},
	})
	if err != nil {
		t.Fatal(err)
	}

	s, ok := table.Find("Consulo SNAPSHOT")
	if !ok {
		t.Fatal("expected SDK")
	}
	if s.Version != "3.0.0" || s.Source != "config" {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_MissingTableIsEmpty(t *testing.T) {
	table, err := Load(context.Background(), core.NewMockFileSystem(), "/nope.xml", nil)
	if err != nil {
		t.Fatalf("missing table must not fail: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d", table.Len())
	}
}

func TestLoad_ReadError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.ReadErrors["/sdk.table.xml"] = errors.New("permission denied")

	if _, err := Load(context.Background(), fs, "/sdk.table.xml", nil); err == nil {
		t.Error("expected error")
	}
}
