//go:build linux

package platform

import (
	"errors"
	"testing"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func newRecordingPlayer(err error) (*soundPlayer, *[]recordedCommand) {
	var commands []recordedCommand
	player := &soundPlayer{
		paplayPath: "/usr/bin/paplay",
		run: func(name string, args ...string) error {
			commands = append(commands, recordedCommand{name: name, args: args})
			return err
		},
	}
	return player, &commands
}

func TestLinuxPlayerPlaysMappedSound(t *testing.T) {
	player, commands := newRecordingPlayer(nil)

	require.NoError(t, player.Play(model.SoundGlass))

	require.Len(t, *commands, 1)
	assert.Equal(t, "/usr/bin/paplay", (*commands)[0].name)
	assert.Equal(t, []string{"/usr/share/sounds/freedesktop/stereo/message.oga"}, (*commands)[0].args)
}

func TestCatalogSoundsMapToDistinctFiles(t *testing.T) {
	seen := make(map[string]model.Sound)
	for _, sound := range model.Sounds() {
		if sound.IsBeep() {
			continue
		}
		path := SoundPath(sound)
		previous, duplicate := seen[path]
		assert.False(t, duplicate, "%s and %s both play %s", previous, sound, path)
		seen[path] = sound
	}
	assert.Equal(t, "/usr/share/sounds/freedesktop/stereo/complete.oga", SoundPath(model.Sound("Unknown")))
}

func TestLinuxPlayerBeepSound(t *testing.T) {
	player, commands := newRecordingPlayer(nil)

	require.NoError(t, player.Play(model.SoundBeep))

	require.Len(t, *commands, 1)
	assert.Equal(t, []string{"/usr/share/sounds/freedesktop/stereo/bell.oga"}, (*commands)[0].args)
}

func TestLinuxPlayerWrapsErrors(t *testing.T) {
	failure := errors.New("no sink")
	player, _ := newRecordingPlayer(failure)

	err := player.Play(model.SoundPing)
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, player.Beep(), failure)
}

func TestUnsupportedPlayer(t *testing.T) {
	var player SoundPlayer = unsupportedSoundPlayer{}

	assert.ErrorIs(t, player.Play(model.SoundPing), ErrSoundUnsupported)
	assert.ErrorIs(t, player.Beep(), ErrSoundUnsupported)
}
