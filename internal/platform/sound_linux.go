//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"pomodoro/internal/core/model"
)

const freedesktopSoundsDir = "/usr/share/sounds/freedesktop/stereo"

const (
	completeSoundFile = "complete.oga"
	bellSoundFile     = "bell.oga"
)

// The catalog names macOS system sounds; each maps to the closest
// freedesktop theme sound.
var freedesktopSounds = map[model.Sound]string{
	model.SoundPing:      completeSoundFile,
	model.SoundGlass:     "message.oga",
	model.SoundHero:      "service-login.oga",
	model.SoundSubmarine: "message-new-instant.oga",
	model.SoundBlow:      "dialog-information.oga",
	model.SoundBottle:    "device-added.oga",
	model.SoundFrog:      "window-attention.oga",
	model.SoundFunk:      "suspend-error.oga",
	model.SoundPop:       "audio-volume-change.oga",
	model.SoundPurr:      "power-plug.oga",
	model.SoundSosumi:    "dialog-warning.oga",
	model.SoundTink:      "camera-shutter.oga",
}

type soundPlayer struct {
	paplayPath string
	run        commandRunner
}

func newSoundPlayer() SoundPlayer {
	path, err := exec.LookPath("paplay")
	if err != nil {
		return unsupportedSoundPlayer{}
	}
	return &soundPlayer{paplayPath: path, run: runCommand}
}

// SoundPath returns the freedesktop sound file played for sound.
func SoundPath(sound model.Sound) string {
	file, ok := freedesktopSounds[sound]
	if !ok {
		file = completeSoundFile
	}
	return filepath.Join(freedesktopSoundsDir, file)
}

func (player *soundPlayer) Play(sound model.Sound) error {
	if sound.IsBeep() {
		return player.Beep()
	}
	if err := player.run(player.paplayPath, SoundPath(sound)); err != nil {
		return fmt.Errorf("paplay %s: %w", sound, err)
	}
	return nil
}

func (player *soundPlayer) Beep() error {
	if err := player.run(player.paplayPath, filepath.Join(freedesktopSoundsDir, bellSoundFile)); err != nil {
		return fmt.Errorf("paplay bell: %w", err)
	}
	return nil
}
