package wavedit

import "math"

const (
	MinSample = math.MinInt16
	MaxSample = math.MaxInt16
)

// Sample is one instant of stereo audio: left and right channel amplitudes.
// Values are signed 16-bit once clamped, but intermediate results of the
// transforms may temporarily lie outside that range.
type Sample [2]int

// Sequence is a time ordered list of stereo samples.
type Sequence []Sample

// Copy makes a deep copy of the sequence.
func (s Sequence) Copy() Sequence {
	if s == nil {
		return nil
	}
	ret := make(Sequence, len(s))
	copy(ret, s)
	return ret
}

// Clamp restricts v to the signed 16-bit range.
func Clamp(v int) int {
	if v < 0 {
		return max(v, MinSample)
	}
	return min(v, MaxSample)
}

// Clamp returns the sample with both channels clamped.
func (s Sample) Clamp() Sample {
	return Sample{Clamp(s[0]), Clamp(s[1])}
}
