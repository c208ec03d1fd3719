package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"calc", "inspect", "sample", "serve", "cache"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty defaults to png", in: "", want: []string{"png"}},
		{name: "single", in: "json", want: []string{"json"}},
		{name: "multiple", in: "png,svg,json", want: []string{"png", "svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAngles(t *testing.T) {
	got, err := parseAngles("10, 20,30.5")
	if err != nil {
		t.Fatalf("parseAngles() error = %v", err)
	}
	if want := []float64{10, 20, 30.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("parseAngles() = %v, want %v", got, want)
	}

	if got, err := parseAngles(""); err != nil || got != nil {
		t.Errorf("parseAngles(\"\") = %v, %v, want nil, nil", got, err)
	}

	if _, err := parseAngles("10,twenty"); err == nil {
		t.Error("parseAngles() with non-numeric input succeeded")
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	c := New(io.Discard, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/custom/cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != "/custom/cache" {
		t.Errorf("cacheDir() = %q, want /custom/cache", dir)
	}
}
