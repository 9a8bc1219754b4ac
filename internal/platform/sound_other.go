//go:build !darwin && !linux

package platform

func newSoundPlayer() SoundPlayer {
	return unsupportedSoundPlayer{}
}
