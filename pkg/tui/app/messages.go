package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/sched"
	"tableflip.dev/daybook/pkg/store"
)

// Timer messages carry the token of the slot that armed them. Handlers drop
// them when the token is no longer live.

type frameMsg struct{ tok sched.Token }

func (m frameMsg) Describe() string { return fmt.Sprintf("token:%d", m.tok) }

type debounceMsg struct{ tok sched.Token }

func (m debounceMsg) Describe() string { return fmt.Sprintf("token:%d", m.tok) }

type settleMsg struct{ tok sched.Token }

func (m settleMsg) Describe() string { return fmt.Sprintf("token:%d", m.tok) }

type retryMsg struct{ tok sched.Token }

func (m retryMsg) Describe() string { return fmt.Sprintf("token:%d", m.tok) }

type glideMsg struct{ tok sched.Token }

func (m glideMsg) Describe() string { return fmt.Sprintf("token:%d", m.tok) }

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel func()
	err    error
}

type monthLoadedMsg struct {
	month, year int
	entries     []entry.Dated
}

func (m monthLoadedMsg) Describe() string {
	return fmt.Sprintf("month:%d-%d entries:%d", m.year, m.month, len(m.entries))
}
