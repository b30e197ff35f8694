package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/entry"
)

// Persistence defines the persistence contract for journal entries.
type Persistence interface {
	ListAll(ctx context.Context) []entry.Dated
	ListMonth(ctx context.Context, month, year int) []entry.Dated
	Store(e *entry.Dated) error
	Delete(e entry.Dated) error
	Import(ctx context.Context, raws []entry.Raw) (int, []error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customises Load.
type Option func(*persistence)

// WithLogger routes non-fatal read failures to log instead of dropping them.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) read(key string) (entry.Dated, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return entry.Dated{}, err
	}
	var raw entry.Raw
	if err := json.Unmarshal(val, &raw); err != nil {
		return entry.Dated{}, err
	}
	raw.ID = keyToPathTransform(key).FileName
	return raw.Resolve()
}

func (p *persistence) collect(keys <-chan string) []entry.Dated {
	all := make([]entry.Dated, 0)
	for key := range keys {
		e, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable entry", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) ListAll(ctx context.Context) []entry.Dated {
	return p.collect(p.d.Keys(ctx.Done()))
}

func (p *persistence) ListMonth(ctx context.Context, month, year int) []entry.Dated {
	return p.collect(p.d.KeysPrefix(monthPrefix(month, year), ctx.Done()))
}

// Store writes e, assigning a key when it has none.
func (p *persistence) Store(e *entry.Dated) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if e.Date.IsZero() {
		return errors.New("store: entry date required")
	}
	if e.Key == "" {
		e.Key = uuid.NewString()
	}
	if e.DisplayDate == "" {
		e.DisplayDate = entry.DisplayDate(e.Date)
	}
	raw := e.Raw()
	raw.ID = ""
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(*e), data); err != nil {
		return fmt.Errorf("store: write %s: %w", e.Key, err)
	}
	return nil
}

func (p *persistence) Delete(e entry.Dated) error {
	if e.Key == "" {
		return errors.New("store: entry key required")
	}
	return p.d.Erase(toKey(e))
}

// Import validates and stores raws. Invalid records are reported and skipped.
func (p *persistence) Import(ctx context.Context, raws []entry.Raw) (int, []error) {
	entries, errs := entry.Process(raws)
	stored := 0
	for i := range entries {
		if err := ctx.Err(); err != nil {
			return stored, append(errs, err)
		}
		if err := p.Store(&entries[i]); err != nil {
			errs = append(errs, err)
			continue
		}
		stored++
	}
	return stored, errs
}

func sortEntries(entries []entry.Dated) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left.Date.Equal(right.Date) {
			return left.Key < right.Key
		}
		return left.Date.Before(right.Date)
	})
}

// Keys look like `yyyy-mm-dd-id` and land on disk as yyyy/mm/dd/id. The id is
// a uuid and may itself contain dashes.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, "-", 4)
	if len(parts) < 4 {
		return &diskv.PathKey{Path: parts[:len(parts)-1], FileName: parts[len(parts)-1]}
	}
	return &diskv.PathKey{Path: parts[:3], FileName: parts[3]}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(e entry.Dated) string {
	return fmt.Sprintf("%s-%s", e.Date.Format("2006-01-02"), e.Key)
}

// monthPrefix matches every key in the zero-based month.
func monthPrefix(month, year int) string {
	return fmt.Sprintf("%04d-%02d-", year, month+1)
}

// monthKeyFromPath maps yyyy/mm path segments to a window key ("2025-8").
func monthKeyFromPath(yearDir, monthDir string) (string, bool) {
	y, err := strconv.Atoi(yearDir)
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(monthDir)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	return fmt.Sprintf("%d-%d", y, m-1), true
}
