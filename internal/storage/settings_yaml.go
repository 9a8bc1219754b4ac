package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes       int    `yaml:"work_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
	Sound             string `yaml:"sound"`
	MenuBarClock      *bool  `yaml:"menu_bar_clock,omitempty"`
}

// DefaultPath returns <UserConfigDir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at configPath.
// A missing file yields defaults; a value outside its range falls back to
// the default for that field only.
func LoadSettings(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to configPath, creating its directory.
func SaveSettings(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	prefs := settings.Preferences()
	menuBarClock := settings.MenuBarClock
	fileData := yamlSettings{
		WorkMinutes:       prefs.WorkMinutes,
		ShortBreakMinutes: prefs.ShortBreakMinutes,
		LongBreakMinutes:  prefs.LongBreakMinutes,
		Sound:             string(prefs.Sound),
		MenuBarClock:      &menuBarClock,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	durations := map[model.Mode]int{
		model.ModeWork:       fileData.WorkMinutes,
		model.ModeShortBreak: fileData.ShortBreakMinutes,
		model.ModeLongBreak:  fileData.LongBreakMinutes,
	}
	for mode, minutes := range durations {
		low, high := model.DurationRange(mode)
		if minutes >= low && minutes <= high {
			*settings = settings.WithMinutes(mode, minutes)
		}
	}

	if sound, err := model.ParseSound(fileData.Sound); err == nil {
		settings.Sound = sound
	}
	if fileData.MenuBarClock != nil {
		settings.MenuBarClock = *fileData.MenuBarClock
	}
}
