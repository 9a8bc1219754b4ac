package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDurationOutOfRange indicates a mode duration outside its allowed range.
	ErrDurationOutOfRange = errors.New("duration out of range")
	// ErrUnknownSound indicates a sound name outside the catalog.
	ErrUnknownSound = errors.New("unknown sound")
)

// Preferences holds the user-adjustable values read by the session engine
// and the notification dispatcher.
type Preferences struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	Sound             Sound
}

// DefaultPreferences returns 25/5/15 minutes and the Ping sound.
func DefaultPreferences() Preferences {
	return Preferences{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		Sound:             DefaultSound,
	}
}

// Minutes returns the configured duration of mode in minutes.
func (prefs Preferences) Minutes(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return prefs.ShortBreakMinutes
	case ModeLongBreak:
		return prefs.LongBreakMinutes
	default:
		return prefs.WorkMinutes
	}
}

// Seconds returns the configured duration of mode in seconds.
func (prefs Preferences) Seconds(mode Mode) int {
	return prefs.Minutes(mode) * 60
}

// WithMinutes returns a copy with the duration of mode replaced.
func (prefs Preferences) WithMinutes(mode Mode, minutes int) Preferences {
	switch mode {
	case ModeShortBreak:
		prefs.ShortBreakMinutes = minutes
	case ModeLongBreak:
		prefs.LongBreakMinutes = minutes
	default:
		prefs.WorkMinutes = minutes
	}
	return prefs
}

// Validate reports the first field outside its allowed range.
func (prefs Preferences) Validate() error {
	for _, mode := range Modes() {
		minutes := prefs.Minutes(mode)
		low, high := DurationRange(mode)
		if minutes < low || minutes > high {
			return fmt.Errorf("%s: %d minutes not in [%d, %d]: %w", mode, minutes, low, high, ErrDurationOutOfRange)
		}
	}
	if !prefs.Sound.Valid() {
		return fmt.Errorf("sound %q: %w", prefs.Sound, ErrUnknownSound)
	}
	return nil
}

// Clamp forces every duration into range and replaces an unknown sound
// with the default.
func (prefs Preferences) Clamp() Preferences {
	for _, mode := range Modes() {
		low, high := DurationRange(mode)
		minutes := prefs.Minutes(mode)
		if minutes < low {
			minutes = low
		}
		if minutes > high {
			minutes = high
		}
		prefs = prefs.WithMinutes(mode, minutes)
	}
	if !prefs.Sound.Valid() {
		prefs.Sound = DefaultSound
	}
	return prefs
}

// DurationRange returns the inclusive range of minutes allowed for mode.
func DurationRange(mode Mode) (int, int) {
	if mode == ModeShortBreak {
		return 1, 30
	}
	return 1, 60
}
