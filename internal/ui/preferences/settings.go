package preferences

import "pomodoro/internal/core/model"

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	Sound             model.Sound

	// MenuBarClock shows the countdown next to the tray icon while running.
	MenuBarClock bool
}

// DefaultSettings returns default settings for Pomodoro.
func DefaultSettings() Settings {
	prefs := model.DefaultPreferences()
	return Settings{
		WorkMinutes:       prefs.WorkMinutes,
		ShortBreakMinutes: prefs.ShortBreakMinutes,
		LongBreakMinutes:  prefs.LongBreakMinutes,
		Sound:             prefs.Sound,
		MenuBarClock:      true,
	}
}

// Preferences converts settings to the engine's preferences, clamped into
// the allowed ranges.
func (settings Settings) Preferences() model.Preferences {
	return model.Preferences{
		WorkMinutes:       settings.WorkMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
		Sound:             settings.Sound,
	}.Clamp()
}

// Minutes returns the configured minutes of mode.
func (settings Settings) Minutes(mode model.Mode) int {
	return settings.Preferences().Minutes(mode)
}

// WithMinutes returns a copy with the minutes of mode replaced.
func (settings Settings) WithMinutes(mode model.Mode, minutes int) Settings {
	switch mode {
	case model.ModeShortBreak:
		settings.ShortBreakMinutes = minutes
	case model.ModeLongBreak:
		settings.LongBreakMinutes = minutes
	default:
		settings.WorkMinutes = minutes
	}
	return settings
}
