package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/window"
)

func TestDefaults(t *testing.T) {
	t.Setenv("DAYBOOK_CONFIG_PATH", t.TempDir())
	cfg, err := Decode(New())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Window.Capacity != 50 || cfg.Window.Batch != 6 || cfg.Window.Before != 3 || cfg.Window.After != 3 {
		t.Fatalf("unexpected window defaults %+v", cfg.Window)
	}
	if cfg.Focus.Debounce != 150*time.Millisecond || cfg.Scroll.RetryAttempts != 30 {
		t.Fatalf("unexpected timing defaults %+v %+v", cfg.Focus, cfg.Scroll)
	}
	if strings.HasPrefix(cfg.Path, "~") {
		t.Fatalf("path not expanded: %s", cfg.Path)
	}
	if cfg.WindowOptions().Policy != window.TrimOpposite {
		t.Fatalf("expected opposite trim policy")
	}
	if got := cfg.AnchorConfig(); got.Batch != 6 || got.BootstrapMin != 10 {
		t.Fatalf("unexpected anchor config %+v", got)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	body := "path: " + filepath.Join(dir, "entries") + "\nwindow:\n  capacity: 24\n  trim_policy: front\nfocus:\n  debounce: 300ms\n"
	if err := os.WriteFile(filepath.Join(dir, ".daybook.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	t.Setenv("DAYBOOK_WINDOW_BATCH", "4")

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Capacity != 24 || cfg.Window.Batch != 4 {
		t.Fatalf("unexpected window config %+v", cfg.Window)
	}
	if cfg.WindowOptions().Policy != window.TrimFront {
		t.Fatalf("expected front trim policy")
	}
	if cfg.Focus.Debounce != 300*time.Millisecond {
		t.Fatalf("unexpected debounce %s", cfg.Focus.Debounce)
	}
	if cfg.BasePath() != filepath.Join(dir, "entries") {
		t.Fatalf("unexpected base path %s", cfg.BasePath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	v := New()
	v.Set("window.trim_policy", "lru")
	if _, err := Decode(v); err == nil {
		t.Fatalf("expected validation error for trim policy")
	}
	v = New()
	v.Set("window.batch", 80)
	if _, err := Decode(v); err == nil {
		t.Fatalf("expected validation error for batch above capacity")
	}
}
