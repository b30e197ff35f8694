package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/anchor"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/sched"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/visibility"
	"tableflip.dev/daybook/pkg/window"
)

// scrollBy moves the surface by delta rows. A manual scroll cancels any
// glide in progress. Observers are notified even when the offset is pinned
// at a bound, so a short window can still grow.
func (m *Model) scrollBy(delta int) tea.Cmd {
	m.glide.Cancel()
	m.offset = m.clampOffset(m.offset + delta)
	return m.afterScroll()
}

// afterScroll is the scroll notification: the loader may expand the window,
// the tracker schedules a frame and visible images are preloaded.
func (m *Model) afterScroll() tea.Cmd {
	var cmds []tea.Cmd
	step := m.loader.OnScroll(anchor.Metrics{
		ScrollTop:    m.offset,
		ScrollHeight: m.scrollHeight(),
		ClientHeight: m.viewportHeight(),
	})
	if step.Expanded {
		cmds = append(cmds, m.applyEdit(step.Edit))
		if step.ScheduleSettle {
			cmds = append(cmds, tick(m.loader.Config().SettleDelay, settleMsg{tok: step.Settle}))
		}
	}
	tok := m.tracker.OnScroll(m.offset)
	cmds = append(cmds, tick(m.tracker.Config().FrameInterval, frameMsg{tok: tok}))
	cmds = append(cmds, m.preloadVisible())
	return tea.Batch(cmds...)
}

// applyEdit lays out an expansion and shifts the offset by the height
// inserted or removed above the viewport, in the same update, so the rows on
// screen do not move.
func (m *Model) applyEdit(edit window.Edit) tea.Cmd {
	m.relayout()
	delta := anchor.Correction(edit, m.heightOf)
	m.offset += delta
	for _, u := range edit.Trimmed {
		delete(m.cards, u.Key)
		delete(m.heights, u.Key)
	}
	m.offset = m.clampOffset(m.offset)
	m.loader.Committed()
	m.header.SetLoading(m.loader.Loading())
	if m.cache != nil && len(edit.Trimmed) > 0 {
		if n := m.cache.UnloadDistant(m.imageKeep()); n > 0 {
			m.header.SetUsage(m.cache.Usage())
		}
	}
	return events.WindowExpandedCmd(edit, delta, m.win.Len())
}

// navigate runs a previous/next/first/last command relative to the focus.
func (m *Model) navigate(cmd anchor.Command) tea.Cmd {
	current := ""
	if f, ok := m.tracker.Focus(); ok {
		current = f.Unit.Key
	}
	return m.gotoCmd(m.loader.HandleCommand(cmd, current, m.command.InInputMode(), m))
}

// jumpToMonth scrolls to u, reseeding the window around it when it is not
// loaded.
func (m *Model) jumpToMonth(u month.Unit) tea.Cmd {
	if idx := m.win.IndexOf(u.Key); idx >= 0 {
		return m.gotoCmd(m.loader.Goto(idx, false, m))
	}
	m.reseed(u)
	m.offset = 0
	return m.gotoCmd(m.startup)
}

// gotoCmd turns a Goto outcome into a scroll or a retry timer.
func (m *Model) gotoCmd(res anchor.GotoResult) tea.Cmd {
	switch {
	case res.Pending:
		return tick(m.loader.Config().RetryInterval, retryMsg{tok: res.Retry})
	case !res.Ready:
		return nil
	case res.Scroll.Smooth:
		m.glideKey = res.Key
		tok := m.glide.Arm()
		return m.onGlide(tok)
	default:
		m.glide.Cancel()
		m.offset = m.clampOffset(res.Scroll.Offset)
		return m.afterScroll()
	}
}

// onGlide moves a third of the remaining distance towards the glide target
// per frame. The target is re-resolved every step because an expansion may
// have shifted it.
func (m *Model) onGlide(tok sched.Token) tea.Cmd {
	if !m.glide.Fire(tok) {
		return nil
	}
	top, _, ok := m.UnitBounds(m.glideKey)
	if !ok {
		return nil
	}
	target := m.clampOffset(top - m.loader.Config().HeaderHeight)
	dist := target - m.offset
	if dist == 0 {
		return nil
	}
	step := dist / 3
	if step == 0 {
		step = dist
	}
	m.offset = m.clampOffset(m.offset + step)
	cmd := m.afterScroll()
	if m.offset == target {
		return cmd
	}
	next := m.glide.Arm()
	return tea.Batch(cmd, tick(m.tracker.Config().FrameInterval, glideMsg{tok: next}))
}

// onFrame feeds the tracker the current rects of every mounted unit.
func (m *Model) onFrame(tok sched.Token) tea.Cmd {
	res := m.tracker.OnFrame(tok, m.rects(), m.viewportHeight())
	if !res.Schedule {
		return nil
	}
	m.log.Debug("focus candidate", zap.String("key", res.Winner.Key), zap.Int("overlap", res.Winner.Overlap))
	return tick(m.tracker.Config().Debounce, debounceMsg{tok: res.Debounce})
}

func (m *Model) rects() []visibility.Rect {
	units := m.win.Units()
	rects := make([]visibility.Rect, 0, len(units))
	for _, u := range units {
		top, h, ok := m.UnitBounds(u.Key)
		if !ok {
			continue
		}
		rects = append(rects, visibility.Rect{Unit: u, Top: top - m.offset, Bottom: top + h - m.offset})
	}
	return rects
}
