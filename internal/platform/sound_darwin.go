//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"pomodoro/internal/core/model"
)

const systemSoundsDir = "/System/Library/Sounds"

type soundPlayer struct {
	afplayPath    string
	osascriptPath string
	run           commandRunner
}

func newSoundPlayer() SoundPlayer {
	afplayPath, _ := exec.LookPath("afplay")
	osascriptPath, _ := exec.LookPath("osascript")
	if afplayPath == "" && osascriptPath == "" {
		return unsupportedSoundPlayer{}
	}
	return &soundPlayer{
		afplayPath:    afplayPath,
		osascriptPath: osascriptPath,
		run:           runCommand,
	}
}

func (player *soundPlayer) Play(sound model.Sound) error {
	if sound.IsBeep() {
		return player.Beep()
	}
	if player.afplayPath == "" {
		return ErrSoundUnsupported
	}
	path := filepath.Join(systemSoundsDir, sound.FileName())
	if err := player.run(player.afplayPath, path); err != nil {
		return fmt.Errorf("afplay %s: %w", sound, err)
	}
	return nil
}

func (player *soundPlayer) Beep() error {
	if player.osascriptPath == "" {
		return ErrSoundUnsupported
	}
	if err := player.run(player.osascriptPath, "-e", "beep"); err != nil {
		return fmt.Errorf("osascript beep: %w", err)
	}
	return nil
}
