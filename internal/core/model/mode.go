package model

// Mode is one of the three timer presets.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModeWork, ModeShortBreak, ModeLongBreak}
}

// Valid reports whether mode is one of the known presets.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// Title returns the display label.
func (mode Mode) Title() string {
	switch mode {
	case ModeShortBreak:
		return "☕ Short Break"
	case ModeLongBreak:
		return "🛋️ Long Break"
	default:
		return "🍅 Work"
	}
}

// Label returns the display label without the icon.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

// IsBreak reports whether mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}
