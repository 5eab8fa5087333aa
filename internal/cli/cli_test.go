package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestCLI() *CLI {
	return New(&bytes.Buffer{}, log.InfoLevel)
}

func TestRootCommandStructure(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := map[string]bool{
		"generate":   false,
		"serve":      false,
		"config":     false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	out := t.TempDir()
	root := newTestCLI().RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{
		"generate",
		"--seed", "42",
		"--segments", "3",
		"--gp", "5",
		"--output", out,
		"--no-cache",
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("run folders = %d, want 1", len(entries))
	}
	runDir := filepath.Join(out, entries[0].Name())
	for _, name := range []string{"coords.csv", "metrics.csv", "segments.txt"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestGenerateCommandInvalidFlags(t *testing.T) {
	root := newTestCLI().RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "--gp", "1", "--no-cache"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("gp=1 must fail validation")
	}
}

func TestConfigInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river.toml")
	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"config", "init", path})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("example file missing: %v", err)
	}

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"config", "check", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config check: %v", err)
	}

	// Re-running init on the same path must refuse to overwrite.
	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"config", "init", path})
	root.SilenceErrors = true
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("config init must not overwrite an existing file")
	}
}

func TestCachePathCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cache dir = %q, want a %q directory", dir, appName)
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "path"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}

func TestCacheClearCommand(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir := filepath.Join(base, appName, "ab")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "entry.json")); !os.IsNotExist(err) {
		t.Error("cached entry survived cache clear")
	}
}
