package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/wav"
)

func TestCompose(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "tune.txt")
	require.NoError(t, os.WriteFile(script, []byte("A 8 Q 8 K 2 B"), 0644))
	out := filepath.Join(dir, "out")
	require.NoError(t, compose(context.Background(), script, options{dir: out, midiOut: true}, zap.NewNop()))
	rate, s, err := wav.Files{}.Load(filepath.Join(out, "tune.wav"))
	require.NoError(t, err)
	require.Equal(t, wavedit.SampleRate, rate)
	require.Len(t, s, 2000)
	_, err = os.Stat(filepath.Join(out, "tune.mid"))
	require.NoError(t, err)
}

func TestComposeErrors(t *testing.T) {
	dir := t.TempDir()
	err := compose(context.Background(), filepath.Join(dir, "missing.txt"), options{dir: dir}, zap.NewNop())
	require.ErrorIs(t, err, wavedit.ErrReadFailed)
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("A long"), 0644))
	err = compose(context.Background(), bad, options{dir: dir}, zap.NewNop())
	require.ErrorIs(t, err, wavedit.ErrMalformedScript)
}

func TestWatchScripts(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "tune.txt")
	require.NoError(t, os.WriteFile(script, []byte("A 1"), 0644))
	out := filepath.Join(dir, "out")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- watchScripts(ctx, []string{script}, options{dir: out}, zap.NewNop()) }()
	wavPath := filepath.Join(out, "tune.wav")
	require.Eventually(t, func() bool {
		// keep rewriting until the watcher is set up and picks the change up
		if err := os.WriteFile(script, []byte("A 2"), 0644); err != nil {
			return false
		}
		_, s, err := wav.Files{}.Load(wavPath)
		return err == nil && len(s) == 250
	}, 5*time.Second, 50*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestComposeToStdout(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "tune.txt")
	require.NoError(t, os.WriteFile(script, []byte("C 1 Q 1"), 0644))
	var out bytes.Buffer
	require.NoError(t, compose(context.Background(), script, options{dir: dir, stdout: &out}, zap.NewNop()))
	directions, err := wavedit.ParseScript("C 1 Q 1")
	require.NoError(t, err)
	audio, _ := wavedit.Synthesize(directions)
	want, err := wavedit.Raw(audio)
	require.NoError(t, err)
	require.Equal(t, want, out.Bytes())
	require.Len(t, out.Bytes(), 250*4)
	_, err = os.Stat(filepath.Join(dir, "tune.wav"))
	require.True(t, os.IsNotExist(err), "no files are written when composing to stdout")
}
