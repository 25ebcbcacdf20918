package wavedit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsariola/wavedit"
)

func TestSampleCount(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{16, 2000},
		{1, 125},
		{4, 500},
		{0, 0},
		{-3, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, wavedit.SampleCount(tt.duration), "duration %d", tt.duration)
	}
}

func TestSynthesizeTone(t *testing.T) {
	s, skipped := wavedit.Synthesize([]wavedit.NoteDirection{{Note: "A", Duration: 16}})
	require.Zero(t, skipped)
	require.Len(t, s, 2000)
	want := []int{0, 32186, 12062, -27666, -22430, 19259}
	for i, w := range want {
		require.InDelta(t, w, s[i][0], 1, "sample %d", i)
		require.Equal(t, s[i][0], s[i][1], "channels should be identical")
	}
	for _, v := range s {
		require.LessOrEqual(t, v[0], wavedit.MaxSample)
		require.GreaterOrEqual(t, v[0], -wavedit.MaxSample)
	}
}

func TestSynthesizeSilenceAndZeroDuration(t *testing.T) {
	s, _ := wavedit.Synthesize([]wavedit.NoteDirection{{Note: "Q", Duration: 4}, {Note: "C", Duration: 0}})
	require.Len(t, s, 500)
	for _, v := range s {
		require.Equal(t, wavedit.Sample{}, v)
	}
}

func TestSynthesizeConcatenatesAndSkipsUnknown(t *testing.T) {
	dirs := []wavedit.NoteDirection{
		{Note: "C", Duration: 2},
		{Note: "X", Duration: 16},
		{Note: "Q", Duration: 1},
		{Note: "h", Duration: 3},
		{Note: "G", Duration: 1},
	}
	s, skipped := wavedit.Synthesize(dirs)
	require.Equal(t, 2, skipped)
	require.Len(t, s, 250+125+125)
	require.Equal(t, wavedit.Sample{}, s[250])
	require.Equal(t, wavedit.Sample{}, s[375], "each note starts at phase zero")
}

func TestFrequency(t *testing.T) {
	hz, ok := wavedit.Frequency("E")
	require.True(t, ok)
	require.Equal(t, 659, hz)
	_, ok = wavedit.Frequency(wavedit.Silence)
	require.False(t, ok)
}

func TestSampleCountIsBounded(t *testing.T) {
	require.Equal(t, wavedit.SampleCount(wavedit.MaxDuration), wavedit.SampleCount(1e18))
	require.Equal(t, wavedit.SampleRate*60*60, wavedit.SampleCount(wavedit.MaxDuration))
}

func TestSynthesizeSkipsOverlongDirections(t *testing.T) {
	dirs := []wavedit.NoteDirection{
		{Note: "A", Duration: 1 << 62},
		{Note: "Q", Duration: 99999999999999},
		{Note: "B", Duration: 1},
		{Note: "C", Duration: 1 << 62},
	}
	s, skipped := wavedit.Synthesize(dirs)
	require.Equal(t, 3, skipped)
	require.Len(t, s, 125)
}
