package session

import (
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStarted      EventType = "started"
	EventPaused       EventType = "paused"
	EventReset        EventType = "reset"
	EventModeSwitched EventType = "mode_switched"
	EventTick         EventType = "tick"
	EventCompleted    EventType = "completed"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Mode      model.Mode
	Remaining int
	Total     int
	Running   bool
}

// Progress returns the elapsed fraction of the current session in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Total <= 0 {
		return 0
	}
	progress := float64(snapshot.Total-snapshot.Remaining) / float64(snapshot.Total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Clock formats the remaining time as MM:SS.
func (snapshot Snapshot) Clock() string {
	return FormatClock(snapshot.Remaining)
}

// Event is an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// FormatClock formats seconds as MM:SS. Negative values render as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
