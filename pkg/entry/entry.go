// Package entry holds dated journal entries and the small helpers the
// calendar uses to place and describe them.
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the dd/MM/yyyy form raw entries carry.
const DateLayout = "02/01/2006"

// DisplayLayout renders dates like "Sep 14, 2025".
const DisplayLayout = "Jan 02, 2006"

// Raw is an entry as imported, before its date is resolved.
type Raw struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Date        string   `json:"date" yaml:"date" validate:"required"`
	ImgURL      string   `json:"imgUrl,omitempty" yaml:"imgUrl,omitempty"`
	Rating      float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty" validate:"dive,required"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Dated is an entry with its date resolved. It is not modified after
// Process builds it.
type Dated struct {
	Key         string    `json:"key,omitempty" yaml:"key,omitempty"`
	Date        time.Time `json:"date" yaml:"date"`
	ImgURL      string    `json:"imgUrl,omitempty" yaml:"imgUrl,omitempty"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Categories  []string  `json:"categories,omitempty" yaml:"categories,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	DisplayDate string    `json:"displayDate" yaml:"displayDate"`
}

var validate = validator.New()

// Validate checks field constraints and the date format.
func (r Raw) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("entry: %w", err)
	}
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	return nil
}

// Resolve validates r and builds its Dated form.
func (r Raw) Resolve() (Dated, error) {
	if err := r.Validate(); err != nil {
		return Dated{}, err
	}
	t, _ := ParseDate(r.Date)
	return Dated{
		Key:         r.ID,
		Date:        t,
		ImgURL:      strings.TrimSpace(r.ImgURL),
		Rating:      r.Rating,
		Categories:  append([]string(nil), r.Categories...),
		Description: r.Description,
		DisplayDate: DisplayDate(t),
	}, nil
}

// Raw converts d back to its import form.
func (d Dated) Raw() Raw {
	return Raw{
		ID:          d.Key,
		Date:        d.Date.Format(DateLayout),
		ImgURL:      d.ImgURL,
		Rating:      d.Rating,
		Categories:  append([]string(nil), d.Categories...),
		Description: d.Description,
	}
}

// Process resolves every raw entry. Entries that fail validation are skipped
// and reported in errs, each tagged with its position.
func Process(raws []Raw) (entries []Dated, errs []error) {
	entries = make([]Dated, 0, len(raws))
	for i, r := range raws {
		d, err := r.Resolve()
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		entries = append(entries, d)
	}
	return entries, errs
}

// FirstCategory returns the leading category or "".
func (d Dated) FirstCategory() string {
	if len(d.Categories) == 0 {
		return ""
	}
	return d.Categories[0]
}
