package manifest

import "testing"

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Info
	}{
		{
			name: "plugin descriptor",
			in:   `<idea-plugin><version>12</version><platformVersion>2.0</platformVersion><idea-version since-build="1900"/></idea-plugin>`,
			want: Info{RootTag: "idea-plugin", Version: "12", PlatformVersion: "2.0", SinceBuild: "1900"},
		},
		{
			name: "application info",
			in:   `<component><build number="42" date="202601151230"/></component>`,
			want: Info{RootTag: "component", BuildNumber: "42", BuildDate: "202601151230"},
		},
		{
			name: "unstamped plugin",
			in:   `<idea-plugin><id>a</id></idea-plugin>`,
			want: Info{RootTag: "idea-plugin"},
		},
		{
			name: "pretty-printed values",
			in:   "<idea-plugin>\n  <version>\n    12\n  </version>\n  <platformVersion> 2.0 </platformVersion>\n</idea-plugin>",
			want: Info{RootTag: "idea-plugin", Version: "12", PlatformVersion: "2.0"},
		},
		{
			name: "latin-1 descriptor",
			in:   "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><idea-plugin><name>Caf\xe9</name><version>7</version></idea-plugin>",
			want: Info{RootTag: "idea-plugin", Version: "7"},
		},
		{
			name: "other root",
			in:   `<project version="4"><version>1</version></project>`,
			want: Info{RootTag: "project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inspect([]byte(tt.in))
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestInfo_Matches(t *testing.T) {
	info := &Info{RootTag: "component"}
	if !info.Matches(ApplicationInfo) {
		t.Error("component should match application-info")
	}
	if info.Matches(PluginDescriptor) {
		t.Error("component should not match plugin")
	}
}

func TestInfo_StampedBuild(t *testing.T) {
	info := &Info{Version: "12", BuildNumber: "34"}
	if got := info.StampedBuild(PluginDescriptor); got != "12" {
		t.Errorf("StampedBuild(plugin) = %q, want 12", got)
	}
	if got := info.StampedBuild(ApplicationInfo); got != "34" {
		t.Errorf("StampedBuild(application-info) = %q, want 34", got)
	}
}
