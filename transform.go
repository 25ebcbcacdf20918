package wavedit

import "fmt"

// VolumeFactor is the default factor used by IncreaseVolume and
// DecreaseVolume.
const VolumeFactor = 1.2

// Reverse returns a new sequence with the samples in opposite order. The input
// is not modified.
func Reverse(s Sequence) Sequence {
	ret := make(Sequence, len(s))
	for i, v := range s {
		ret[len(s)-1-i] = v
	}
	return ret
}

// Accelerate keeps the samples at even positions, halving the duration.
func Accelerate(s Sequence) Sequence {
	ret := make(Sequence, 0, (len(s)+1)/2)
	for i := 0; i < len(s); i += 2 {
		ret = append(ret, s[i])
	}
	return ret
}

// Decelerate inserts the average of every adjacent pair between them, so the
// result has 2*len(s)-1 samples and the original samples at even positions.
func Decelerate(s Sequence) (Sequence, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: decelerate needs at least 2 samples, got %d", ErrInsufficientSamples, len(s))
	}
	ret := make(Sequence, 0, 2*len(s)-1)
	ret = append(ret, s[0])
	for i := 1; i < len(s); i++ {
		ret = append(ret, average2(s[i-1], s[i]), s[i])
	}
	return ret, nil
}

// IncreaseVolume multiplies every channel value by VolumeFactor.
func IncreaseVolume(s Sequence) Sequence {
	return Amplify(s, VolumeFactor)
}

// DecreaseVolume divides every channel value by VolumeFactor.
func DecreaseVolume(s Sequence) Sequence {
	return Attenuate(s, VolumeFactor)
}

// Amplify multiplies every channel value by factor. Results are truncated
// toward zero and clamped to the 16-bit range.
func Amplify(s Sequence, factor float64) Sequence {
	return mapClamped(s, func(v int) int { return int(float64(v) * factor) })
}

// Attenuate divides every channel value by factor. Results are truncated
// toward zero and clamped to the 16-bit range.
func Attenuate(s Sequence, factor float64) Sequence {
	return mapClamped(s, func(v int) int { return int(float64(v) / factor) })
}

func mapClamped(s Sequence, f func(int) int) Sequence {
	ret := make(Sequence, len(s))
	for i, v := range s {
		ret[i] = Sample{Clamp(f(v[0])), Clamp(f(v[1]))}
	}
	return ret
}

// Smooth runs a 3-tap moving average over the sequence. The result has the same
// length as the input. The first sample is a + b/2 of the first two samples,
// the last one is the average of the last two samples and every other sample
// is the average of itself and its two neighbours.
func Smooth(s Sequence) (Sequence, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: smoothing needs at least 3 samples, got %d", ErrInsufficientSamples, len(s))
	}
	n := len(s)
	ret := make(Sequence, n)
	for c := 0; c < 2; c++ {
		ret[0][c] = int(float64(s[0][c]) + float64(s[1][c])/2)
	}
	for i := 1; i < n-1; i++ {
		for c := 0; c < 2; c++ {
			ret[i][c] = (s[i-1][c] + s[i][c] + s[i+1][c]) / 3
		}
	}
	ret[n-1] = average2(s[n-2], s[n-1])
	return ret, nil
}

// average2 averages two samples per channel, truncating toward zero.
func average2(a, b Sample) Sample {
	return Sample{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}
