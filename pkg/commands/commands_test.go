package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRegistersCommands(t *testing.T) {
	root := New()
	for _, name := range []string{"ui", "add", "import", "get", "cal", "info", "key", "version", "completion"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if c, _, err := root.Find([]string{"ls"}); err != nil || c.Name() != "get" {
		t.Errorf("ls should alias get")
	}
}

func TestImportDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte(`[{"date": "14/09/2025", "rating": 4}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	root := New()
	root.SetArgs([]string{"import", "--dry-run", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("import --dry-run: %v", err)
	}
}

func TestAddRequiresDescription(t *testing.T) {
	root := New()
	root.SetArgs([]string{"add", "--path", t.TempDir()})
	root.SetIn(strings.NewReader(""))
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err == nil {
		t.Fatalf("expected an error without a description")
	}
}
