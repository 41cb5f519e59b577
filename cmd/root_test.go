package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/solidkit/pkg/config"
	"github.com/sirupsen/logrus"
)

// resetGlobals restores the command state shared between tests.
func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		verbose = false
		cfg = config.Default()
		logger.SetLevel(logrus.InfoLevel)
	})
}

func TestSetupFromConfigFile(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[log]\nlevel = \"warn\"\n\n[bench]\niterations = 42\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	configPath = path
	if err := setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if cfg.Bench.Iterations != 42 {
		t.Errorf("Iterations = %d, want 42", cfg.Bench.Iterations)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}

func TestSetupVerboseOverridesLevel(t *testing.T) {
	resetGlobals(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	verbose = true
	if err := setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestSetupMissingDefaultConfigUsesDefaults(t *testing.T) {
	resetGlobals(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if cfg.Bench.Iterations != config.Default().Bench.Iterations {
		t.Errorf("Iterations = %d, want default", cfg.Bench.Iterations)
	}
}

func TestSetupMissingExplicitConfigFails(t *testing.T) {
	resetGlobals(t)
	configPath = filepath.Join(t.TempDir(), "missing.toml")
	if err := setup(); err == nil {
		t.Error("expected error for missing --config file")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(buf.String(), "solidkit version ") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range GetRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"demo", "eval", "interactive", "mesh", "version"} {
		if !names[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}

func TestInteractiveRegistry(t *testing.T) {
	if f := interactiveCmd.Flags().Lookup("with-demo"); f == nil || f.DefValue != "false" {
		t.Fatalf("--with-demo flag = %v, want bool defaulting to false", f)
	}

	reg, err := interactiveRegistry(false)
	if err != nil || reg.Len() != 0 {
		t.Fatalf("unseeded registry: len %d, err %v", reg.Len(), err)
	}

	reg, err = interactiveRegistry(true)
	if err != nil {
		t.Fatal(err)
	}
	demo, _ := demoSolids()
	if reg.Len() != len(demo) {
		t.Fatalf("seeded registry has %d solids, want %d", reg.Len(), len(demo))
	}
	for i, s := range reg.All() {
		if s.Name() != demo[i].Name() {
			t.Errorf("solid %d = %q, want %q", i, s.Name(), demo[i].Name())
		}
	}
	if reg.Lookup("Purple Peak") == nil {
		t.Error("seeded registry should resolve demo names")
	}
}
