// Package app is the root Bubble Tea model: an infinitely scrolling calendar
// of month cards with a sticky month header.
//
// All engine state (window, loader, tracker) is mutated inside Update, which
// Bubble Tea runs on a single goroutine. Timers are tea.Tick commands that
// carry a sched.Token and are dropped on arrival when superseded.
package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/daybook/pkg/anchor"
	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/sched"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/tui/components/command"
	"tableflip.dev/daybook/pkg/tui/components/entryviewer"
	"tableflip.dev/daybook/pkg/tui/components/eventviewer"
	"tableflip.dev/daybook/pkg/tui/components/header"
	"tableflip.dev/daybook/pkg/tui/components/monthcard"
	"tableflip.dev/daybook/pkg/tui/events"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/tui/ui/overlay"
	"tableflip.dev/daybook/pkg/visibility"
	"tableflip.dev/daybook/pkg/window"
)

const (
	commandID events.ComponentID = "command"
	viewerID  events.ComponentID = "viewer"

	wheelRows    = 3
	eventsHeight = 10
)

// Options wires the model's collaborators. Only Config may be nil-defaulted
// meaningfully; a nil Store shows an empty journal and a nil Cache disables
// image preloading.
type Options struct {
	Config   *config.Config
	Store    store.Persistence
	Cache    *imagecache.Cache
	Logger   *zap.Logger
	Recorder window.Recorder
	Theme    *theme.Theme
	// Now is the clock used for the pivot month and today's highlight.
	Now func() time.Time
}

// Model is the root model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	log    *zap.Logger
	store  store.Persistence
	cache  *imagecache.Cache
	now    func() time.Time
	theme  theme.Theme

	win     *window.Manager
	loader  *anchor.Loader
	tracker *visibility.Tracker

	entries  []entry.Dated
	filters  entry.Filters
	index    entry.Index
	inflight map[string]struct{}

	// cards and heights are keyed by unit key. heights outlives cards for
	// trimmed units until the offset correction has been applied.
	cards   map[string]monthcard.Card
	heights map[string]int
	tops    map[string]int
	total   int
	offset  int

	glide    sched.Slot
	glideKey string
	startup  anchor.GotoResult

	width  int
	height int

	header  *header.Model
	command *command.Model
	viewer  *entryviewer.Model
	events  *eventviewer.Model
	help    help.Model
	keys    keyMap

	showEvents bool
	showHelp   bool

	watchCh     <-chan store.Event
	watchCancel func()
}

// New builds the model and seeds the window around today.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}

	winOpts := cfg.WindowOptions()
	winOpts.Logger = log.Named("window")
	winOpts.Recorder = opts.Recorder
	win := window.New(winOpts)

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		log:      log,
		store:    opts.Store,
		cache:    opts.Cache,
		now:      now,
		theme:    th,
		win:      win,
		loader:   anchor.New(win, cfg.AnchorConfig(), log.Named("anchor")),
		tracker:  visibility.New(cfg.VisibilityConfig(), log.Named("focus")),
		index:    entry.NewIndex(nil),
		inflight: make(map[string]struct{}),
		cards:    make(map[string]monthcard.Card),
		heights:  make(map[string]int),
		tops:     make(map[string]int),
		header:   header.NewModel(th.Header),
		command: command.NewModel(command.Options{
			ID:          commandID,
			Placeholder: "command",
			Styles:      th.Footer,
		}),
		viewer: entryviewer.NewModel(viewerID, th.Viewer),
		events: eventviewer.NewModel(300),
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
	m.command.SetSuggestions(suggestions)
	m.command.SetStatus(m.help.ShortHelpView(m.keys.ShortHelp()))
	m.reseed(month.FromTime(now()))
	return m
}

// Run starts the program on the alternate screen with mouse wheel support.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Close stops the store watcher.
func (m *Model) Close() {
	m.stopWatch()
	m.cancel()
}

// reseed replaces the window with the configured span around pivot and
// requests a jump to it. The jump resolves once the surface has a size.
func (m *Model) reseed(pivot month.Unit) {
	w := m.cfg.Window
	if err := m.win.Seed(pivot.Month, pivot.Year, w.Before, w.After); err != nil {
		m.log.Warn("seed failed", zap.Error(err))
		return
	}
	m.cards = make(map[string]monthcard.Card)
	m.heights = make(map[string]int)
	m.tracker.Reset(m.win.Units(), m.now())
	if f, ok := m.tracker.Focus(); ok {
		m.header.SetFocus(f)
	}
	m.relayout()
	m.startup = m.loader.Goto(m.win.IndexOf(pivot.Key), false, m)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadEntriesCmd(),
		startWatchCmd(m.ctx, m.store),
		m.gotoCmd(m.startup),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.describe(msg)
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.relayout()
		m.offset = m.clampOffset(m.offset)

	case frameMsg:
		cmds = append(cmds, m.onFrame(msg.tok))
	case debounceMsg:
		if f, ok := m.tracker.OnDebounce(msg.tok); ok {
			m.header.SetFocus(f)
			cmds = append(cmds, events.FocusChangedCmd(f))
		}
	case settleMsg:
		if m.loader.Settle(msg.tok) {
			m.header.SetLoading(false)
		}
	case retryMsg:
		cmds = append(cmds, m.gotoCmd(m.loader.Retry(msg.tok, m)))
	case glideMsg:
		cmds = append(cmds, m.onGlide(msg.tok))

	case events.EntriesLoadedMsg:
		if msg.Err != nil {
			m.command.SetStatus("ERR: " + msg.Err.Error())
			break
		}
		m.setEntries(msg.Entries)
		cmds = append(cmds, m.preloadVisible())
	case monthLoadedMsg:
		m.mergeMonth(msg.month, msg.year, msg.entries)
		cmds = append(cmds, m.preloadVisible())
	case watchStartedMsg:
		if msg.err != nil {
			m.command.SetStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case events.StoreChangedMsg:
		cmds = append(cmds, m.reloadFor(msg.Event), m.waitForWatch())
	case events.StoreClosedMsg:
		m.stopWatch()
	case events.ImagesPreloadedMsg:
		for _, url := range msg.URLs {
			delete(m.inflight, url)
		}
		m.header.SetUsage(msg.Usage)
	case events.FocusChangedMsg:
		// header already updated when the debounce fired

	case events.CommandSubmitMsg:
		cmds = append(cmds, m.runCommand(msg))
	case events.FilterChangeMsg:
		m.setFilters(msg.Filters)
	case events.ViewerClosedMsg:
		// nothing to restore, the calendar never moved

	case tea.MouseWheelMsg:
		if m.viewer.Open() {
			break
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			cmds = append(cmds, m.scrollBy(-wheelRows))
		case tea.MouseWheelDown:
			cmds = append(cmds, m.scrollBy(wheelRows))
		}

	case tea.KeyPressMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press: open modals and the prompt first, then the
// calendar bindings.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.viewer.Open() {
		_, cmd := m.viewer.Update(msg)
		return cmd, false
	}
	if _, cmd, consumed := m.command.Update(msg); consumed {
		return cmd, false
	}
	if m.showEvents && (msg.String() == "pgup" || msg.String() == "pgdown" || msg.String() == "end") {
		_, cmd := m.events.Update(msg)
		return cmd, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Up):
		return m.scrollBy(-1), false
	case key.Matches(msg, m.keys.Down):
		return m.scrollBy(1), false
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-max(1, m.viewportHeight()-1)), false
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(max(1, m.viewportHeight()-1)), false
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(anchor.CommandPrev), false
	case key.Matches(msg, m.keys.Next):
		return m.navigate(anchor.CommandNext), false
	case key.Matches(msg, m.keys.First):
		return m.navigate(anchor.CommandFirst), false
	case key.Matches(msg, m.keys.Last):
		return m.navigate(anchor.CommandLast), false
	case key.Matches(msg, m.keys.Today):
		return m.jumpToMonth(month.FromTime(m.now())), false
	case key.Matches(msg, m.keys.Open):
		return m.openViewer(), false
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}
	return nil, false
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.header.SetSize(width, header.Height)
	m.command.SetWidth(width)
	m.viewer.SetSize(width, m.viewportHeight())
	m.events.SetSize(width, eventsHeight)
}

// viewportHeight is the number of calendar rows on screen.
func (m *Model) viewportHeight() int {
	h := m.height - header.Height - 1
	if m.showEvents {
		h -= eventsHeight
	}
	return max(1, h)
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width == 0 || m.height == 0 {
		return "", nil
	}
	vh := m.viewportHeight()
	body := strings.Join(m.visibleRows(vh), "\n")
	if m.viewer.Open() {
		body = overlay.Compose(body, m.width, vh, m.viewer.View(), overlay.Centered())
	}
	if s := m.command.Suggestions(); s != "" {
		body = overlay.Compose(body, m.width, vh, s, overlay.Placement{Horizontal: lipgloss.Left, Vertical: lipgloss.Bottom})
	} else if m.showHelp {
		full := m.help.FullHelpView(m.keys.FullHelp())
		body = overlay.Compose(body, m.width, vh, m.theme.Viewer.Frame.Render(full), overlay.Centered())
	}

	parts := []string{m.header.View(), body}
	if m.showEvents {
		parts = append(parts, m.events.View())
	}
	bar, cursor := m.command.View()
	parts = append(parts, bar)
	if cursor != nil {
		cursor.Y = m.height - 1
	}
	return strings.Join(parts, "\n"), cursor
}

// describe mirrors every message into the event log and the debug logger.
func (m *Model) describe(msg tea.Msg) {
	var detail string
	switch v := msg.(type) {
	case events.Describer:
		detail = v.Describe()
	case tea.KeyMsg:
		detail = fmt.Sprintf("key:%q", v.String())
	case tea.WindowSizeMsg:
		detail = fmt.Sprintf("size:%dx%d", v.Width, v.Height)
	default:
		return
	}
	name := reflect.TypeOf(msg).String()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	level := zapcore.DebugLevel
	if m.isErrorMsg(msg) {
		level = zapcore.WarnLevel
	}
	m.events.Append(eventviewer.Entry{Source: name, Summary: detail, Level: level})
	if ce := m.log.Check(level, "tea message"); ce != nil {
		ce.Write(zap.String("type", name), zap.String("detail", detail))
	}
}

func (m *Model) isErrorMsg(msg tea.Msg) bool {
	switch v := msg.(type) {
	case events.EntriesLoadedMsg:
		return v.Err != nil
	case events.ImagesPreloadedMsg:
		return len(v.Failed) > 0
	}
	return false
}
