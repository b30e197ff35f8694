package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/entry"
)

// AddOptions
type AddOptions struct {
	Description string
	Rating      float64
	Categories  []string
	ImgURL      string
	On          OnOptions
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().Float64VarP(&o.Rating, "rating", "r", 0,
		"Rating for the day, 0 to 5 in half steps.")
	cmd.Flags().StringSliceVarP(&o.Categories, "category", "c", nil,
		`Categories, repeat or comma separate: -c walk,outdoors.`)
	cmd.Flags().StringVar(&o.ImgURL, "img", "",
		"Image URL or local path shown with the entry.")
	AddOnArgs(cmd, &o.On)
}

// Raw builds the import form of the entry.
func (o *AddOptions) Raw() (entry.Raw, error) {
	on, err := o.On.GetOn()
	if err != nil {
		return entry.Raw{}, err
	}
	raw := entry.Raw{
		Rating:      o.Rating,
		Categories:  o.Categories,
		ImgURL:      o.ImgURL,
		Description: strings.TrimSpace(o.Description),
	}
	if on != nil {
		raw.Date = on.Format(entry.DateLayout)
	}
	return raw, nil
}
