package entry

import (
	"math"
	"strings"
)

const (
	fullStar  = "★"
	otherStar = "☆"
)

// RatingDisplay renders a 0-5 rating as five star glyphs. Half and empty stars
// share the outline glyph.
func RatingDisplay(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	empty := 5 - full - half
	return strings.Repeat(fullStar, full) + strings.Repeat(otherStar, half+empty)
}
