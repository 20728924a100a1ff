package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a scheduled callback back onto the event loop.
type frameMsg struct{ fn func() }

// Scheduler turns animation ticks into tea.Tick commands, so every
// callback runs inside Update on the program goroutine.
type Scheduler struct {
	pending []tea.Cmd
}

func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(delay, func(time.Time) tea.Msg {
		return frameMsg{fn: fn}
	}))
}

// Flush hands everything scheduled since the last flush to the runtime.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
