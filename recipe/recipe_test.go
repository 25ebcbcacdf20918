package recipe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/recipe"
	"github.com/vsariola/wavedit/session"
	"github.com/vsariola/wavedit/wav"
)

func TestParse(t *testing.T) {
	r, err := recipe.Parse([]byte("version: 1.2.0\ninput: a.wav\noutput: b.wav\noperations: [reverse, Smooth, decrease-volume]\n"))
	require.NoError(t, err)
	require.Equal(t, []wavedit.Operation{wavedit.ReverseOp, wavedit.SmoothOp, wavedit.DecreaseVolumeOp}, r.Operations)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"no version":      "input: a.wav\noutput: b.wav\n",
		"future version":  "version: 2.0.0\ninput: a.wav\noutput: b.wav\n",
		"bad version":     "version: one\ninput: a.wav\noutput: b.wav\n",
		"no source":       "version: 1.0.0\noutput: b.wav\n",
		"two sources":     "version: 1.0.0\ninput: a.wav\nscript: a.txt\noutput: b.wav\n",
		"no output":       "version: 1.0.0\ninput: a.wav\n",
		"bad operation":   "version: 1.0.0\ninput: a.wav\noutput: b.wav\noperations: [echo]\n",
		"not even a yaml": "version: [",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := recipe.Parse([]byte(input))
			require.Error(t, err)
		})
	}
}

func TestRunFromScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tune.txt"), []byte("C 4 Q 4 W 2"), 0644))
	path := filepath.Join(dir, "tune.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\nscript: tune.txt\noutput: tune.wav\noperations: [accelerate, smooth]\n"), 0644))
	r, err := recipe.ReadFile(path)
	require.NoError(t, err)
	res, err := r.Run(session.New(nil), wav.Files{})
	require.NoError(t, err)
	require.Equal(t, recipe.Result{Samples: 500, FrameRate: wavedit.SampleRate, Skipped: 1}, res)
	rate, s, err := wav.Files{}.Load(filepath.Join(dir, "tune.wav"))
	require.NoError(t, err)
	require.Equal(t, wavedit.SampleRate, rate)
	require.Len(t, s, 500)
}

func TestRunStopsOnRejectedOperation(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	require.NoError(t, wav.Files{}.Write(in, 8000, wavedit.Sequence{{1, 1}, {2, 2}, {3, 3}}))
	r := &recipe.Recipe{
		Version:    "1.0.0",
		Input:      in,
		Output:     filepath.Join(dir, "out.wav"),
		Operations: []wavedit.Operation{wavedit.AccelerateOp, wavedit.SmoothOp},
	}
	require.NoError(t, r.Validate())
	_, err := r.Run(session.New(nil), wav.Files{})
	require.ErrorIs(t, err, wavedit.ErrInsufficientSamples)
	_, err = os.Stat(r.Output)
	require.True(t, os.IsNotExist(err))
}
