// Package sched provides the single-slot coalescing primitive shared by the
// frame, debounce, settle and retry timers.
//
// A Slot holds at most one pending request. Arm cancels whatever was pending
// and returns a fresh Token; the owner schedules delivery of that token however
// it likes (a Bubble Tea tick, a time.AfterFunc) and calls Fire when it
// arrives. Only the most recently armed token fires; anything older is stale
// and is dropped.
package sched

// Token identifies one armed request on a Slot.
type Token uint64

// Slot is a cancel-and-replace timer slot. It is not safe for concurrent use;
// it is meant to be driven from a single event loop.
type Slot struct {
	gen     uint64
	pending bool
}

// Arm supersedes any pending request and returns the token for the new one.
func (s *Slot) Arm() Token {
	s.gen++
	s.pending = true
	return Token(s.gen)
}

// Cancel drops the pending request, if any.
func (s *Slot) Cancel() {
	if s.pending {
		s.gen++
		s.pending = false
	}
}

// Fire reports whether tok is the live request and, if so, clears it. A token
// can fire at most once.
func (s *Slot) Fire(tok Token) bool {
	if !s.pending || uint64(tok) != s.gen {
		return false
	}
	s.pending = false
	return true
}

// Live reports whether tok is still the pending request without consuming it.
func (s *Slot) Live(tok Token) bool {
	return s.pending && uint64(tok) == s.gen
}

// Pending reports whether a request is outstanding.
func (s *Slot) Pending() bool { return s.pending }
