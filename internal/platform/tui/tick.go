// Package tui provides the Bubble Tea integration for the snake platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// Pacer is implemented by games that choose their own tick interval.
// The interval is asked again before every tick, so speed changes apply
// from the next tick on.
type Pacer interface {
	TickInterval() time.Duration
}

// minTickInterval keeps a misbehaving Pacer from spinning the loop.
const minTickInterval = 10 * time.Millisecond

// tickInterval returns the delay before the next tick of game.
// Games that are not Pacers run at the fixed tickRate (ticks per second).
func tickInterval(game any, tickRate int) time.Duration {
	if p, ok := game.(Pacer); ok {
		return max(p.TickInterval(), minTickInterval)
	}
	if tickRate <= 0 {
		tickRate = 10
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
