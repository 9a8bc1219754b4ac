// Package notify delivers session-complete alerts: a desktop notification
// followed by the selected sound, degrading to the system beep and finally
// the terminal bell.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
)

const terminalBell = "\a"

// Poster presents a desktop notification.
type Poster interface {
	Post(title, body string) error
}

// Dispatcher implements session.Notifier. Notify returns immediately; delivery
// happens on a separate goroutine and never reports failure to the caller.
type Dispatcher struct {
	poster   Poster
	player   platform.SoundPlayer
	fallback io.Writer
	logger   *slog.Logger
	done     func()
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFallbackWriter sets where the terminal bell is written when no sound
// backend works. Defaults to stderr.
func WithFallbackWriter(writer io.Writer) Option {
	return func(dispatcher *Dispatcher) {
		dispatcher.fallback = writer
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(dispatcher *Dispatcher) {
		if logger != nil {
			dispatcher.logger = logger
		}
	}
}

// WithDeliveredHook registers fn to run after each delivery attempt.
func WithDeliveredHook(fn func()) Option {
	return func(dispatcher *Dispatcher) {
		dispatcher.done = fn
	}
}

// NewDispatcher creates a dispatcher. A nil poster skips the desktop
// notification; a nil player goes straight to the terminal bell.
func NewDispatcher(poster Poster, player platform.SoundPlayer, opts ...Option) *Dispatcher {
	dispatcher := &Dispatcher{
		poster:   poster,
		player:   player,
		fallback: os.Stderr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(dispatcher)
	}
	dispatcher.logger = dispatcher.logger.With("component", "notify")
	return dispatcher
}

// Notify announces that a session in mode finished.
func (dispatcher *Dispatcher) Notify(mode model.Mode, sound model.Sound) {
	go dispatcher.deliver(mode, sound)
}

// Preview plays sound without posting a notification, for the settings panel.
func (dispatcher *Dispatcher) Preview(sound model.Sound) {
	go func() {
		defer dispatcher.recoverDelivery()
		dispatcher.playSound(sound)
	}()
}

func (dispatcher *Dispatcher) deliver(mode model.Mode, sound model.Sound) {
	defer func() {
		if dispatcher.done != nil {
			dispatcher.done()
		}
	}()
	defer dispatcher.recoverDelivery()

	if dispatcher.poster != nil {
		title, body := Message(mode)
		if err := dispatcher.poster.Post(title, body); err != nil {
			dispatcher.logger.Warn("desktop notification failed", "mode", mode, "error", err)
		}
	}
	dispatcher.playSound(sound)
}

func (dispatcher *Dispatcher) playSound(sound model.Sound) {
	if dispatcher.player == nil {
		dispatcher.ringBell()
		return
	}
	err := dispatcher.player.Play(sound)
	if err == nil {
		return
	}
	dispatcher.logger.Debug("sound failed, falling back to beep", "sound", sound, "error", err)
	if sound.IsBeep() {
		dispatcher.ringBell()
		return
	}
	if err := dispatcher.player.Beep(); err != nil {
		dispatcher.logger.Debug("beep failed, falling back to terminal bell", "error", err)
		dispatcher.ringBell()
	}
}

func (dispatcher *Dispatcher) ringBell() {
	if dispatcher.fallback == nil {
		return
	}
	if _, err := io.WriteString(dispatcher.fallback, terminalBell); err != nil {
		dispatcher.logger.Warn("terminal bell failed", "error", err)
	}
}

func (dispatcher *Dispatcher) recoverDelivery() {
	if recovered := recover(); recovered != nil {
		dispatcher.logger.Error("notification delivery panicked", "panic", fmt.Sprint(recovered))
		dispatcher.ringBell()
	}
}

// Message returns the notification title and body for a finished mode.
func Message(mode model.Mode) (string, string) {
	title := mode.Title() + " complete!"
	if mode.IsBreak() {
		return title, "Break is over, back to work! 💪"
	}
	return title, "Time for a break! 🎉"
}
