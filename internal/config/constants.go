package config

// SourceFileExtensions are the recognized fixture file extensions.
var SourceFileExtensions = []string{".yaml", ".yml"}

// SettingsFileNames are searched, in order, when looking for settings.
var SettingsFileNames = []string{"cadenza.yaml", "cadenza.yml"}

// Note declarations
const (
	MinOctave = 0
	MaxOctave = 8

	// Declaration-level pitches are single letters in this range.
	MinDeclPitch = 'A'
	MaxDeclPitch = 'G'
)

// Declaration-level durations, longest first.
var NoteDurations = []string{"Blanca", "Negra", "Corchea", "Semicorchea"}

// Literal validation
const (
	PitchRoots = "CDEFGAB"

	MinTempoBPM = 20
	MaxTempoBPM = 400

	MinBeatsPerBar = 1
	MaxBeatsPerBar = 16
)

// BeatUnits are the accepted time-signature denominators for literals.
var BeatUnits = []int{2, 4, 8, 16}

// Pitch and key modifiers
const (
	SharpModifier = '#'
	FlatModifier  = 'b'
	MinorModifier = 'm'
)

// IsNoteDuration reports whether d is one of NoteDurations.
func IsNoteDuration(d string) bool {
	for _, v := range NoteDurations {
		if v == d {
			return true
		}
	}
	return false
}

// IsBeatUnit reports whether den is one of BeatUnits.
func IsBeatUnit(den int) bool {
	for _, v := range BeatUnits {
		if v == den {
			return true
		}
	}
	return false
}
