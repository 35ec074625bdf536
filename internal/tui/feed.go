package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// feed carries subscription updates into the Bubble Tea loop. Only the
// latest undelivered value is kept.
type feed[T any] struct {
	ch   chan T
	done chan struct{}
	once sync.Once
}

func newFeed[T any]() *feed[T] {
	return &feed[T]{ch: make(chan T, 1), done: make(chan struct{})}
}

// push replaces an undelivered value with v. It never blocks.
func (f *feed[T]) push(v T) {
	for {
		select {
		case <-f.done:
			return
		case f.ch <- v:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// next waits for the following value. The command yields nil once the feed
// is closed.
func (f *feed[T]) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-f.ch:
			return v
		case <-f.done:
			return nil
		}
	}
}

func (f *feed[T]) close() {
	f.once.Do(func() { close(f.done) })
}
