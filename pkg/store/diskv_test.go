package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/entry"
)

func TestStoreAndListMonth(t *testing.T) {
	p, err := Load(Path(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	stored, errs := p.Import(ctx, []entry.Raw{
		{Date: "14/09/2025", Rating: 4, Description: "ridge walk", ImgURL: "https://example.com/a.png"},
		{Date: "02/09/2025", Rating: 2.5, Description: "rain"},
		{Date: "01/10/2025", Rating: 5, Description: "party"},
		{Date: "not a date", Rating: 1},
	})
	if stored != 3 || len(errs) != 1 {
		t.Fatalf("expected 3 stored and 1 error, got %d and %v", stored, errs)
	}

	sept := p.ListMonth(ctx, 8, 2025)
	if len(sept) != 2 {
		t.Fatalf("expected 2 September entries, got %d", len(sept))
	}
	if sept[0].Description != "rain" || sept[1].Description != "ridge walk" {
		t.Fatalf("entries not sorted by date: %+v", sept)
	}
	if sept[1].Key == "" || sept[1].DisplayDate != "Sep 14, 2025" {
		t.Fatalf("unexpected stored entry %+v", sept[1])
	}

	all := p.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if err := p.Delete(all[2]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := p.ListMonth(ctx, 9, 2025); len(got) != 0 {
		t.Fatalf("expected October empty after delete, got %+v", got)
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	e := entry.Dated{Date: time.Date(2025, 9, 14, 0, 0, 0, 0, time.Local), Key: "0b9e-41c2-aa"}
	key := toKey(e)
	pk := keyToPathTransform(key)
	if len(pk.Path) != 3 || pk.Path[0] != "2025" || pk.Path[1] != "09" || pk.FileName != "0b9e-41c2-aa" {
		t.Fatalf("unexpected path key %+v", pk)
	}
	if back := pathToKeyTransform(pk); back != key {
		t.Fatalf("round trip mismatch %q != %q", back, key)
	}
	if got, ok := monthKeyFromPath("2025", "09"); !ok || got != "2025-8" {
		t.Fatalf("unexpected month key %q", got)
	}
}
