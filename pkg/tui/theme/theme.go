package theme

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark   bool
	Header HeaderTheme
	Month  MonthTheme
	Footer FooterTheme
	Viewer ViewerTheme
}

// HeaderTheme styles the sticky month header.
type HeaderTheme struct {
	Bar   lipgloss.Style
	Title lipgloss.Style
	Arrow lipgloss.Style
	Meta  lipgloss.Style
}

// MonthTheme styles a rendered month card. TitleFrom and TitleTo are the hex
// endpoints of the title gradient.
type MonthTheme struct {
	TitleFrom  string
	TitleTo    string
	Weekday    lipgloss.Style
	Day        lipgloss.Style
	OtherMonth lipgloss.Style
	Today      lipgloss.Style
	Rating     lipgloss.Style
	Category   lipgloss.Style
	Image      lipgloss.Style
	Skeleton   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Status              lipgloss.Style
	Prompt              lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
	CommandSelectedDesc lipgloss.Style
}

// ViewerTheme styles the single-entry modal.
type ViewerTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Meta  lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the theme matching the terminal background.
func Default() Theme {
	return New(termenv.HasDarkBackground())
}

// New returns the built-in theme for a dark or light background.
func New(dark bool) Theme {
	fg := func(darkColor, lightColor string) lipgloss.Style {
		if dark {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(darkColor))
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(lightColor))
	}

	commandName := fg("212", "162").Bold(true)
	commandDesc := fg("244", "242")

	from, to := "#F5A97F", "#C6A0F6"
	if !dark {
		from, to = "#B4541B", "#6A3FA0"
	}

	return Theme{
		Dark: dark,
		Header: HeaderTheme{
			Bar:   lipgloss.NewStyle().Padding(0, 1),
			Title: fg("230", "235").Bold(true),
			Arrow: fg("213", "162"),
			Meta:  fg("244", "243"),
		},
		Month: MonthTheme{
			TitleFrom:  from,
			TitleTo:    to,
			Weekday:    fg("241", "245").Bold(true),
			Day:        fg("252", "236"),
			OtherMonth: fg("238", "251"),
			Today:      fg("0", "15").Background(lipgloss.Color("215")).Bold(true),
			Rating:     fg("220", "136"),
			Category:   fg("109", "24"),
			Image:      fg("150", "28"),
			Skeleton:   fg("237", "253"),
		},
		Footer: FooterTheme{
			Help:                fg("245", "243"),
			Status:              fg("214", "130").Italic(true),
			Prompt:              fg("212", "162"),
			CommandName:         commandName,
			CommandDescription:  commandDesc,
			CommandSelectedName: commandName.Reverse(true),
			CommandSelectedDesc: commandDesc.Reverse(true),
		},
		Viewer: ViewerTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(to)).
				Padding(1, 2),
			Title: fg("230", "235").Bold(true),
			Meta:  fg("244", "243"),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Gradient returns n colors blended in Luv space from one hex color to
// another. Invalid hex values fall back to white.
func Gradient(from, to string, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	start, err := colorful.Hex(from)
	if err != nil {
		start = colorful.Color{R: 1, G: 1, B: 1}
	}
	end, err := colorful.Hex(to)
	if err != nil {
		end = colorful.Color{R: 1, G: 1, B: 1}
	}
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(start.BlendLuv(end, t).Clamped().Hex())
	}
	return out
}

// GradientText renders s with one gradient step per rune.
func GradientText(s, from, to string, base lipgloss.Style) string {
	runes := []rune(s)
	colors := Gradient(from, to, len(runes))
	var b strings.Builder
	for i, r := range runes {
		b.WriteString(base.Foreground(colors[i]).Render(string(r)))
	}
	return b.String()
}
