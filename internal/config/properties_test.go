package config

import (
	"testing"
)

func TestEnvName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cold.build.number", "COLD_BUILD_NUMBER"},
		{"vulcan.consulo.build.number", "VULCAN_CONSULO_BUILD_NUMBER"},
		{"already_UPPER", "ALREADY_UPPER"},
		{"with-dash9", "WITH_DASH9"},
		{"ünïcode", "_N_CODE"},
	}
	for _, tt := range tests {
		if got := EnvName(tt.in); got != tt.want {
			t.Errorf("EnvName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProperties_Get(t *testing.T) {
	env := map[string]string{
		"COLD_BUILD_NUMBER": "from-env",
		"EMPTY_IN_ENV":      "",
		"ONLY_ENV":          "env",
	}
	file := map[string]string{
		"cold.build.number": "from-file",
		"empty.in.env":      "file-fallback",
		"only.file":         "file",
	}

	props, err := NewProperties([]string{"cold.build.number=from-define", "blank="}, file)
	if err != nil {
		t.Fatalf("NewProperties() error = %v", err)
	}
	props.WithEnv(func(k string) string { return env[k] })

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{"define wins", "cold.build.number", "from-define", true},
		{"empty env falls through", "empty.in.env", "file-fallback", true},
		{"env only", "only.env", "env", true},
		{"file only", "only.file", "file", true},
		{"empty define is unset", "blank", "", false},
		{"missing", "nope", "", false},
		{"empty name", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := props.Get(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Get(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProperties_EnvOverFile(t *testing.T) {
	props, err := NewProperties(nil, map[string]string{"cold.build.number": "file"})
	if err != nil {
		t.Fatal(err)
	}
	props.WithEnv(func(k string) string {
		if k == "COLD_BUILD_NUMBER" {
			return "env"
		}
		return ""
	})
	if got, _ := props.Get("cold.build.number"); got != "env" {
		t.Errorf("Get() = %q, want env", got)
	}
}

func TestNewProperties_Invalid(t *testing.T) {
	for _, def := range []string{"novalue", "=value", "  =x"} {
		if _, err := NewProperties([]string{def}, nil); err == nil {
			t.Errorf("NewProperties(%q) expected error", def)
		}
	}
}

func TestNewProperties_ValueWithEquals(t *testing.T) {
	props, err := NewProperties([]string{"k=a=b,c"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	props.WithEnv(func(string) string { return "" })
	if got, _ := props.Get("k"); got != "a=b,c" {
		t.Errorf("Get() = %q, want a=b,c", got)
	}
}
