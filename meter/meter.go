// Package meter measures the levels of a sequence.
package meter

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/vsariola/wavedit"
)

type (
	// Decibel is a level relative to full scale (dBFS).
	Decibel float32

	// Levels describes the loudness of a sequence. Peak and RMS are per channel.
	Levels struct {
		Samples int
		Peak    [2]Decibel
		RMS     [2]Decibel
		// Clipped counts the channel values sitting on the 16-bit rails.
		Clipped int
	}
)

// Silent is reported for channels that contain only zeros.
const Silent Decibel = -math.MaxFloat32

func (d Decibel) String() string {
	if d == Silent {
		return "-inf"
	}
	return formatDecibel(d)
}

// Measure computes the levels of s.
func Measure(s wavedit.Sequence) Levels {
	ret := Levels{Samples: len(s), Peak: [2]Decibel{Silent, Silent}, RMS: [2]Decibel{Silent, Silent}}
	if len(s) == 0 {
		return ret
	}
	tmp := make([]float32, len(s))
	tmp2 := make([]float32, len(s))
	for chn := 0; chn < 2; chn++ {
		// deinterleave and normalize the channel
		for i, v := range s {
			c := wavedit.Clamp(v[chn])
			if c == wavedit.MinSample || c == wavedit.MaxSample {
				ret.Clipped++
			}
			tmp[i] = float32(c) / -wavedit.MinSample
		}
		power := vek32.Mean(vek32.Mul_Into(tmp2, tmp, tmp))
		ret.RMS[chn] = power2decibel(power)
		vek32.Abs_Inplace(tmp)
		ret.Peak[chn] = amplitude2decibel(vek32.Max(tmp))
	}
	return ret
}

func amplitude2decibel(a float32) Decibel {
	if a <= 0 {
		return Silent
	}
	return Decibel(20 * math.Log10(float64(a)))
}

func power2decibel(p float32) Decibel {
	if p <= 0 {
		return Silent
	}
	return Decibel(10 * math.Log10(float64(p)))
}
