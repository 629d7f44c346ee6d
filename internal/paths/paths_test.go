package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeDirUsesHome(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))

	home, err := HomeDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if home != filepath.Join("/tmp", "test-home") {
		t.Fatalf("expected %s, got %s", filepath.Join("/tmp", "test-home"), home)
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Run("uses home", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))
		t.Setenv("XDG_DATA_HOME", "")

		dir, err := DefaultDataDir()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := filepath.Join("/tmp", "test-home", ".local", "share", "flow")
		if dir != expected {
			t.Fatalf("expected %s, got %s", expected, dir)
		}
	})

	t.Run("uses XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))
		t.Setenv("XDG_DATA_HOME", filepath.Join("/tmp", "xdg-data"))

		dir, err := DefaultDataDir()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := filepath.Join("/tmp", "xdg-data", "flow")
		if dir != expected {
			t.Fatalf("expected %s, got %s", expected, dir)
		}
	})

	t.Run("ignores relative XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("HOME", filepath.Join("/tmp", "test-home"))
		t.Setenv("XDG_DATA_HOME", "relative/data")

		dir, err := DefaultDataDir()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := filepath.Join("/tmp", "test-home", ".local", "share", "flow")
		if dir != expected {
			t.Fatalf("expected %s, got %s", expected, dir)
		}
	})
}

func TestDefaultConfigFile(t *testing.T) {
	t.Setenv("HOME", filepath.Join("/tmp", "test-home"))
	t.Setenv("XDG_CONFIG_HOME", "")

	file, err := DefaultConfigFile()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := filepath.Join("/tmp", "test-home", ".config", "flow", "config.toml")
	if file != expected {
		t.Fatalf("expected %s, got %s", expected, file)
	}
}

func TestWorkingDirReturnsCurrentDir(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	resolved, err := WorkingDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expected, _ := filepath.EvalSymlinks(workDir)
	actual, _ := filepath.EvalSymlinks(resolved)
	if actual != expected {
		t.Fatalf("expected %s, got %s", expected, actual)
	}
}

func TestResolveWithDefault(t *testing.T) {
	t.Run("returns override when provided", func(t *testing.T) {
		result, err := ResolveWithDefault("/custom/path", DefaultDataDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result != "/custom/path" {
			t.Fatalf("expected /custom/path, got %s", result)
		}
	})

	t.Run("propagates error from default function", func(t *testing.T) {
		errorFn := func() (string, error) {
			return "", os.ErrNotExist
		}

		_, err := ResolveWithDefault("", errorFn)
		if err != os.ErrNotExist {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
	})
}
