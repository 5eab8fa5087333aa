package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikpau/sr-gen/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()

	tests := []struct {
		name     string
		mutate   func(*Parameters)
		wantCode errors.Code
	}{
		{"zero segments", func(p *Parameters) { p.NSegments = 0 }, errors.ErrCodeInvalidParameter},
		{"gp too small", func(p *Parameters) { p.GP = 1 }, errors.ErrCodeInvalidParameter},
		{"zero bpd", func(p *Parameters) { p.BPD = 0 }, errors.ErrCodeInvalidParameter},
		{"negative bpd", func(p *Parameters) { p.BPD = -5 }, errors.ErrCodeInvalidParameter},
		{"inverted lengths", func(p *Parameters) { p.Lengths = Range{Low: 10, High: 5} }, errors.ErrCodeInvalidRange},
		{"inverted radii", func(p *Parameters) { p.Radii = Range{Low: 2000, High: 500} }, errors.ErrCodeInvalidRange},
		{"inverted angles", func(p *Parameters) { p.Angles = Range{Low: 80, High: 60} }, errors.ErrCodeInvalidRange},
		{"nonpositive radius", func(p *Parameters) { p.Radii = Range{Low: 0, High: 0} }, errors.ErrCodeInvalidParameter},
		{"negative depth", func(p *Parameters) { p.MaxDepth = -1 }, errors.ErrCodeInvalidParameter},
		{"utm zone out of range", func(p *Parameters) { p.StartAtUTM = 61 }, errors.ErrCodeInvalidParameter},
		{"traversal savepath", func(p *Parameters) { p.SavePath = "../evil" }, errors.ErrCodeInvalidPath},
		{"uppercase exporter", func(p *Parameters) { p.Exporter = "CSV" }, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		p := valid
		tt.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !errors.Is(err, tt.wantCode) {
			t.Errorf("%s: code = %s, want %s", tt.name, errors.GetCode(err), tt.wantCode)
		}
	}
}

func TestZeroRadiiAllowedForCanal(t *testing.T) {
	p := Default()
	p.Canal = true
	p.Radii = Range{Low: 0, High: 0}
	if err := p.Validate(); err != nil {
		t.Errorf("canal should not require positive radii: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.toml")

	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Seed != 42 || p.NSegments != 10 || p.GP != 50 {
		t.Errorf("unexpected parameters: %+v", p)
	}
	if p.Lengths != (Range{Low: 400, High: 2000}) {
		t.Errorf("lengths = %+v", p.Lengths)
	}
	if !p.Seeded() {
		t.Error("seed 42 should report seeded")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.toml")
	writeFile(t, path, "nsegments = 3\ngp = 4\n")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.NSegments != 3 || p.GP != 4 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.BPD != 20 || p.Exporter != "csv" {
		t.Errorf("defaults not kept: %+v", p)
	}
	if p.Seeded() {
		t.Error("seed should default to unset")
	}
}

func TestLoadInvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "gp = 1\n")

	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("expected INVALID_PARAMETER, got %v", err)
	}
}

func TestWriteExampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.toml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteExample(path); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second write should fail with INVALID_PATH, got %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
