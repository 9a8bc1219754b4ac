package platform

import (
	"errors"
	"os/exec"

	"pomodoro/internal/core/model"
)

// ErrSoundUnsupported indicates no sound backend is available on this system.
var ErrSoundUnsupported = errors.New("sound playback unsupported")

// SoundPlayer plays catalog sounds and the system beep.
type SoundPlayer interface {
	Play(sound model.Sound) error
	Beep() error
}

// NewSoundPlayer returns a platform-specific sound player.
func NewSoundPlayer() SoundPlayer {
	return newSoundPlayer()
}

type commandRunner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type unsupportedSoundPlayer struct{}

func (unsupportedSoundPlayer) Play(model.Sound) error {
	return ErrSoundUnsupported
}

func (unsupportedSoundPlayer) Beep() error {
	return ErrSoundUnsupported
}
