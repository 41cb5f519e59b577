package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Bench.Iterations != 100000 || cfg.Bench.Warmup != 1000 {
		t.Errorf("bench = %+v, want 100000/1000", cfg.Bench)
	}
	if cfg.Report.NameWidth != 19 {
		t.Errorf("name_width = %d, want 19", cfg.Report.NameWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[bench]
iterations = 500

[log]
level = "debug"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Bench.Iterations != 500 {
		t.Errorf("iterations = %d, want 500", cfg.Bench.Iterations)
	}
	if cfg.Bench.Warmup != 1000 {
		t.Errorf("warmup = %d, want default 1000", cfg.Bench.Warmup)
	}
	if cfg.Mesh.Cells != 200 {
		t.Errorf("cells = %d, want default 200", cfg.Mesh.Cells)
	}
	lvl, err := cfg.LogLevel()
	if err != nil || lvl != logrus.DebugLevel {
		t.Errorf("LogLevel() = %v, %v; want debug", lvl, err)
	}
	if d, err := cfg.EvalTimeout(); err != nil || d != 5*time.Second {
		t.Errorf("EvalTimeout() = %v, %v; want default 5s", d, err)
	}
}

func TestEvalTimeout(t *testing.T) {
	cfg, err := Parse([]byte("[eval]\ntimeout = \"250ms\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d, _ := cfg.EvalTimeout(); d != 250*time.Millisecond {
		t.Errorf("EvalTimeout() = %v, want 250ms", d)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"syntax", `[bench`, "config"},
		{"unknown key", "[bench]\nspeed = 3\n", "speed"},
		{"zero iterations", "[bench]\niterations = 0\n", "bench.iterations"},
		{"negative warmup", "[bench]\nwarmup = -1\n", "bench.warmup"},
		{"coarse mesh", "[mesh]\ncells = 2\n", "mesh.cells"},
		{"negative gap", "[mesh]\ngap = -1.5\n", "mesh.gap"},
		{"unknown kernel", "[mesh]\nkernel = \"cgal\"\n", "mesh.kernel"},
		{"few segments", "[mesh]\nsegments = 2\n", "mesh.segments"},
		{"narrow names", "[report]\nname_width = 2\n", "report.name_width"},
		{"bad level", "[log]\nlevel = \"chatty\"\n", "log.level"},
		{"bad timeout", "[eval]\ntimeout = \"soon\"\n", "eval.timeout"},
		{"zero timeout", "[eval]\ntimeout = \"0s\"\n", "eval.timeout"},
		{"wrong type", "[bench]\niterations = \"many\"\n", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[mesh]\ncells = 64\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mesh.Cells != 64 {
		t.Errorf("cells = %d, want 64", cfg.Mesh.Cells)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault(missing) error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadOrDefault(missing) = %+v, want defaults", cfg)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[bench]\niterations = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault(invalid) should fail")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "solidkit", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	got, err = DefaultPath()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".config", "solidkit", "config.toml")) {
		t.Errorf("DefaultPath() = %q, want ~/.config fallback", got)
	}
}
