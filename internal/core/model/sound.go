package model

import "fmt"

// Sound names one entry of the system sound catalog.
type Sound string

const (
	SoundPing      Sound = "Ping"
	SoundGlass     Sound = "Glass"
	SoundHero      Sound = "Hero"
	SoundSubmarine Sound = "Submarine"
	SoundBlow      Sound = "Blow"
	SoundBottle    Sound = "Bottle"
	SoundFrog      Sound = "Frog"
	SoundFunk      Sound = "Funk"
	SoundPop       Sound = "Pop"
	SoundPurr      Sound = "Purr"
	SoundSosumi    Sound = "Sosumi"
	SoundTink      Sound = "Tink"
	SoundBeep      Sound = "Beep"

	DefaultSound = SoundPing
)

var soundCatalog = []Sound{
	SoundPing, SoundGlass, SoundHero, SoundSubmarine, SoundBlow, SoundBottle,
	SoundFrog, SoundFunk, SoundPop, SoundPurr, SoundSosumi, SoundTink, SoundBeep,
}

// Sounds returns the catalog in display order.
func Sounds() []Sound {
	return append([]Sound(nil), soundCatalog...)
}

// SoundNames returns the catalog as strings, for selectors.
func SoundNames() []string {
	names := make([]string, len(soundCatalog))
	for i, sound := range soundCatalog {
		names[i] = string(sound)
	}
	return names
}

// ParseSound looks up name in the catalog.
func ParseSound(name string) (Sound, error) {
	sound := Sound(name)
	if !sound.Valid() {
		return DefaultSound, fmt.Errorf("sound %q: %w", name, ErrUnknownSound)
	}
	return sound, nil
}

// Valid reports whether sound is in the catalog.
func (sound Sound) Valid() bool {
	for _, known := range soundCatalog {
		if sound == known {
			return true
		}
	}
	return false
}

// IsBeep reports whether sound is the plain system beep, which has no file.
func (sound Sound) IsBeep() bool {
	return sound == SoundBeep
}

// FileName returns the system sound file, e.g. "Glass.aiff".
// Unknown sounds map to the default sound's file.
func (sound Sound) FileName() string {
	if sound.IsBeep() {
		return ""
	}
	if !sound.Valid() {
		sound = DefaultSound
	}
	return string(sound) + ".aiff"
}
