package wavedit

import "math"

const (
	// SampleRate is the frame rate of synthesized audio.
	SampleRate = 2000
	// SixteenthsPerWhole is the number of duration units in one second of
	// synthesized audio.
	SixteenthsPerWhole = 16
	// Silence is the note symbol for a rest.
	Silence = "Q"
	// MaxDuration is the longest duration a single direction can have: one
	// hour of audio.
	MaxDuration = SixteenthsPerWhole * 60 * 60
)

// NoteDirection tells the synthesizer to play Note for Duration sixteenth
// notes.
type NoteDirection struct {
	Note     string
	Duration int
}

var frequencies = map[string]int{
	"A": 440,
	"B": 494,
	"C": 523,
	"D": 587,
	"E": 659,
	"F": 698,
	"G": 784,
}

// Frequency returns the pitch of a note symbol in Hz. ok is false for the
// silence symbol and for unknown symbols.
func Frequency(note string) (hz int, ok bool) {
	hz, ok = frequencies[note]
	return
}

// SampleCount returns the number of samples a direction of the given duration
// produces. Non-positive durations produce no samples and durations above
// MaxDuration are counted as MaxDuration.
func SampleCount(duration int) int {
	duration = min(max(duration, 0), MaxDuration)
	return int(math.Floor(float64(duration) / SixteenthsPerWhole * SampleRate))
}

// Synthesize renders the directions into stereo samples at SampleRate. Pitched
// notes are full scale sine waves, identical on both channels; Silence renders
// zeros. Directions with unknown note symbols or durations above MaxDuration
// produce no samples; their number is returned in skipped.
func Synthesize(directions []NoteDirection) (s Sequence, skipped int) {
	total := 0
	for _, d := range directions {
		if d.Duration <= MaxDuration {
			total += SampleCount(d.Duration)
		}
	}
	s = make(Sequence, 0, min(total, SampleCount(MaxDuration)))
	for _, d := range directions {
		if d.Duration > MaxDuration {
			skipped++
			continue
		}
		count := SampleCount(d.Duration)
		if d.Note == Silence {
			s = append(s, make(Sequence, count)...)
			continue
		}
		hz, ok := Frequency(d.Note)
		if !ok {
			skipped++
			continue
		}
		samplesPerCycle := float64(SampleRate) / float64(hz)
		for i := 0; i < count; i++ {
			v := int(MaxSample * math.Sin(2*math.Pi*float64(i)/samplesPerCycle))
			s = append(s, Sample{v, v})
		}
	}
	return s, skipped
}
