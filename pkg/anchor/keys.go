package anchor

// Command is a discrete navigation request.
type Command int

const (
	CommandNone Command = iota
	CommandPrev
	CommandNext
	CommandFirst
	CommandLast
)

func (c Command) String() string {
	switch c {
	case CommandPrev:
		return "prev"
	case CommandNext:
		return "next"
	case CommandFirst:
		return "first"
	case CommandLast:
		return "last"
	default:
		return "none"
	}
}

// Target resolves cmd to a window index relative to the unit keyed current.
// An unknown current key navigates relative to the first unit.
func (l *Loader) Target(cmd Command, current string) (int, bool) {
	n := l.win.Len()
	if n == 0 {
		return 0, false
	}
	idx := l.win.IndexOf(current)
	if idx < 0 {
		idx = 0
	}
	switch cmd {
	case CommandPrev:
		if idx == 0 {
			return 0, false
		}
		return idx - 1, true
	case CommandNext:
		if idx >= n-1 {
			return 0, false
		}
		return idx + 1, true
	case CommandFirst:
		return 0, true
	case CommandLast:
		return n - 1, true
	default:
		return 0, false
	}
}

// HandleCommand runs a keyboard command. Nothing happens while a text input
// holds focus.
func (l *Loader) HandleCommand(cmd Command, current string, inputFocused bool, layout Layout) GotoResult {
	if inputFocused || cmd == CommandNone {
		return GotoResult{}
	}
	idx, ok := l.Target(cmd, current)
	if !ok {
		return GotoResult{}
	}
	return l.Goto(idx, cmd == CommandPrev || cmd == CommandNext, layout)
}
