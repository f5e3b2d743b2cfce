package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackzampolin/nsb/internal/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.QuestionColumn != "Question" {
		t.Errorf("expected Question column, got %s", cfg.QuestionColumn)
	}
	if !cfg.NormalizeColumns {
		t.Error("expected column normalization on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
	if cfg.LintColors() != lint.DefaultColors {
		t.Errorf("expected default lint colors, got %+v", cfg.LintColors())
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("empty question column", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.QuestionColumn = " "
		if err := cfg.Validate(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("negative workers", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Workers = -1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
question_column: "Text"
workers: 3
colors:
  parse: magenta
`)

		mgr, err := NewManager(configFile, "")
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.QuestionColumn != "Text" {
			t.Errorf("expected Text, got %s", cfg.QuestionColumn)
		}
		if cfg.Workers != 3 {
			t.Errorf("expected 3 workers, got %d", cfg.Workers)
		}
		if cfg.Colors.Parse != "magenta" {
			t.Errorf("expected magenta, got %s", cfg.Colors.Parse)
		}
		if cfg.Colors.Structure != "yellow" {
			t.Errorf("expected default yellow to survive a partial colors block, got %s", cfg.Colors.Structure)
		}
		if mgr.File() != configFile {
			t.Errorf("expected config file %s, got %s", configFile, mgr.File())
		}
	})

	t.Run("defaults without a config file", func(t *testing.T) {
		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().TUBColumn != "TUB" {
			t.Errorf("expected default TUB column, got %s", mgr.Get().TUBColumn)
		}
		if mgr.Get().QuesColumn != "Ques" || mgr.Get().LODColumn != "LOD" {
			t.Errorf("expected default Ques and LOD columns, got %s and %s", mgr.Get().QuesColumn, mgr.Get().LODColumn)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("NSB_SUBJECT_COLUMN", "Category")
		t.Setenv("NSB_COLORS_STRUCTURE", "cyan")

		mgr, err := NewManager("", t.TempDir())
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if mgr.Get().SubjectColumn != "Category" {
			t.Errorf("expected Category, got %s", mgr.Get().SubjectColumn)
		}
		if mgr.Get().Colors.Structure != "cyan" {
			t.Errorf("expected cyan, got %s", mgr.Get().Colors.Structure)
		}
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		configFile := writeConfig(t, "workers: -2\n")
		if _, err := NewManager(configFile, ""); err == nil {
			t.Error("expected error for negative workers")
		}
	})
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "workers: 1\n"), "")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(*Config) {})
	mgr.OnChange(func(*Config) {})
	mgr.OnChange(func(*Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "question_column: initial\n")

	mgr, err := NewManager(configFile, "")
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value

	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.QuestionColumn)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("question_column: updated\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().QuestionColumn; got != "updated" {
		t.Errorf("config not updated: expected updated, got %s", got)
	}
	if v := lastValue.Load(); v != "updated" {
		t.Errorf("callback received wrong value: expected updated, got %v", v)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("failed to write default config: %v", err)
	}

	mgr, err := NewManager(path, "")
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if mgr.Get().QuestionColumn != "Question" || mgr.Get().Colors.Parse != "red" {
		t.Errorf("unexpected config from defaults file: %+v", mgr.Get())
	}
}
