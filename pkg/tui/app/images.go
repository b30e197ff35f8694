package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/tui/events"
)

// preloadVisible warms the cache with the images of the units on screen and
// one unit either side. URLs already loaded or in flight are skipped.
func (m *Model) preloadVisible() tea.Cmd {
	if m.cache == nil || m.width == 0 {
		return nil
	}
	var urls []string
	for _, u := range m.nearViewport() {
		for _, e := range m.monthEntries(u) {
			if e.ImgURL == "" || m.cache.Loaded(e.ImgURL) {
				continue
			}
			if _, busy := m.inflight[e.ImgURL]; busy {
				continue
			}
			m.inflight[e.ImgURL] = struct{}{}
			urls = append(urls, e.ImgURL)
		}
	}
	if len(urls) == 0 {
		return nil
	}
	ctx, cache, log := m.ctx, m.cache, m.log
	return func() tea.Msg {
		errs := cache.PreloadAll(ctx, urls)
		var failed []string
		for i, err := range errs {
			if err != nil {
				failed = append(failed, urls[i])
				log.Debug("image preload failed", zap.String("url", urls[i]), zap.Error(err))
			}
		}
		return events.ImagesPreloadedMsg{URLs: urls, Failed: failed, Usage: cache.Usage()}
	}
}

// nearViewport returns the units intersecting the viewport plus one neighbour
// on each side, in window order.
func (m *Model) nearViewport() []month.Unit {
	units := m.win.Units()
	end := m.offset + m.viewportHeight()
	first, last := -1, -1
	for i, u := range units {
		top, h, ok := m.UnitBounds(u.Key)
		if !ok || top+h <= m.offset || top >= end {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return nil
	}
	return units[max(0, first-1):min(len(units), last+2)]
}

// imageKeep is the set of image URLs belonging to units still in the window.
func (m *Model) imageKeep() map[string]struct{} {
	keep := make(map[string]struct{})
	for _, u := range m.win.Units() {
		for _, e := range m.monthEntries(u) {
			if e.ImgURL != "" {
				keep[e.ImgURL] = struct{}{}
			}
		}
	}
	return keep
}

// monthEntries returns the filtered entries falling in u.
func (m *Model) monthEntries(u month.Unit) []entry.Dated {
	return entry.InMonth(m.filters.Apply(m.entries), u.Month, u.Year)
}
