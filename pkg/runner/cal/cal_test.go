package cal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/store"
)

func TestCalPrintsConsecutiveMonths(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.Path(t.TempDir()))
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	var out bytes.Buffer
	n := Cal{From: month.Must(11, 2025), Count: 2, Out: &out, Persistence: p}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"December 2025", "January 2026"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCalRequiresPersistence(t *testing.T) {
	n := Cal{From: month.Must(0, 2025)}
	if err := n.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without persistence")
	}
}
