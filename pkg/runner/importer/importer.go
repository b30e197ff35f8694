// Package importer loads journal entries from a JSON or YAML array.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/store"
)

type Importer struct {
	// Path is the file to read, "-" for stdin.
	Path  string
	Stdin io.Reader
	Out   io.Writer
	// DryRun validates without storing.
	DryRun bool

	Persistence store.Persistence
}

func (n *Importer) Do(ctx context.Context) error {
	data, err := n.read()
	if err != nil {
		return err
	}
	raws, err := Decode(data, filepath.Ext(n.Path))
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	faint := color.New(color.Faint)

	if n.DryRun {
		entries, errs := entry.Process(raws)
		for _, err := range errs {
			_, _ = faint.Fprintln(out, err)
		}
		_, _ = fmt.Fprintf(out, "%d valid, %d invalid\n", len(entries), len(errs))
		return nil
	}

	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	stored, errs := n.Persistence.Import(ctx, raws)
	for _, err := range errs {
		_, _ = faint.Fprintln(out, err)
	}
	_, _ = fmt.Fprintf(out, "imported %d of %d entries\n", stored, len(raws))
	return nil
}

func (n *Importer) read() ([]byte, error) {
	if n.Path == "" || n.Path == "-" {
		in := n.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	}
	return os.ReadFile(n.Path)
}

// Decode parses an array of entries. ext selects the format; without one a
// leading '[' means JSON and anything else is read as YAML.
func Decode(data []byte, ext string) ([]entry.Raw, error) {
	var raws []entry.Raw
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("import: json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("import: yaml: %w", err)
		}
	default:
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			return Decode(data, ".json")
		}
		return Decode(data, ".yaml")
	}
	return raws, nil
}
