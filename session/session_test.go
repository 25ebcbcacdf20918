package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsariola/wavedit"
	"github.com/vsariola/wavedit/session"
)

type memFiles struct {
	rates   map[string]int
	audio   map[string]wavedit.Sequence
	scripts map[string]string
	failOn  string
}

func newMemFiles() *memFiles {
	return &memFiles{rates: map[string]int{}, audio: map[string]wavedit.Sequence{}, scripts: map[string]string{}}
}

var errDisk = errors.New("disk on fire")

func (m *memFiles) Load(name string) (int, wavedit.Sequence, error) {
	a, ok := m.audio[name]
	if !ok || name == m.failOn {
		return 0, nil, errDisk
	}
	return m.rates[name], a.Copy(), nil
}

func (m *memFiles) Write(name string, frameRate int, s wavedit.Sequence) error {
	if name == m.failOn {
		return errDisk
	}
	m.rates[name] = frameRate
	m.audio[name] = s.Copy()
	return nil
}

func (m *memFiles) ReadScript(name string) (string, error) {
	text, ok := m.scripts[name]
	if !ok {
		return "", errDisk
	}
	return text, nil
}

func TestLoadApplySave(t *testing.T) {
	files := newMemFiles()
	files.rates["in.wav"] = 44100
	files.audio["in.wav"] = wavedit.Sequence{{1, 2}, {3, 4}, {5, 6}}
	s := session.New(nil)
	require.NoError(t, s.Load(files, "in.wav"))
	require.NoError(t, s.Apply(wavedit.ReverseOp))
	require.NoError(t, s.Apply(wavedit.AccelerateOp))
	require.NoError(t, s.Save(files, "out.wav"))
	require.Equal(t, wavedit.Sequence{{5, 6}, {1, 2}}, files.audio["out.wav"])
	require.Equal(t, 44100, files.rates["out.wav"])
	require.Equal(t, wavedit.Sequence{{1, 2}, {3, 4}, {5, 6}}, files.audio["in.wav"])
}

func TestRejectedOperationKeepsState(t *testing.T) {
	s := session.New(nil)
	s.SetAudio(8000, wavedit.Sequence{{1, 1}, {2, 2}})
	err := s.Apply(wavedit.SmoothOp)
	require.ErrorIs(t, err, wavedit.ErrInsufficientSamples)
	require.Equal(t, wavedit.Sequence{{1, 1}, {2, 2}}, s.Audio())
	require.False(t, s.CanUndo())
}

func TestApplyWithoutAudio(t *testing.T) {
	s := session.New(nil)
	require.ErrorIs(t, s.Apply(wavedit.ReverseOp), session.ErrNoAudio)
	require.ErrorIs(t, s.Save(newMemFiles(), "x.wav"), session.ErrNoAudio)
}

func TestCollaboratorFailures(t *testing.T) {
	files := newMemFiles()
	s := session.New(nil)
	require.ErrorIs(t, s.Load(files, "missing.wav"), wavedit.ErrLoadFailed)
	_, err := s.Compose(files, "missing.txt")
	require.ErrorIs(t, err, wavedit.ErrReadFailed)
	s.SetAudio(100, wavedit.Sequence{{1, 1}})
	files.failOn = "out.wav"
	require.ErrorIs(t, s.Save(files, "out.wav"), wavedit.ErrSaveFailed)
}

func TestCompose(t *testing.T) {
	files := newMemFiles()
	files.scripts["tune.txt"] = "A 16 X 4 Q 4 B"
	core, logs := observer.New(zap.InfoLevel)
	s := session.New(zap.New(core))
	skipped, err := s.Compose(files, "tune.txt")
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
	require.Equal(t, wavedit.SampleRate, s.FrameRate())
	require.Equal(t, 2500, s.Len())
	require.Equal(t, 1, logs.FilterMessage("skipped unknown notes").Len())

	files.scripts["bad.txt"] = "A sixteen"
	_, err = s.Compose(files, "bad.txt")
	require.ErrorIs(t, err, wavedit.ErrMalformedScript)
	require.Equal(t, 2500, s.Len())
}

func TestUndoRedo(t *testing.T) {
	s := session.New(nil)
	orig := wavedit.Sequence{{1, 1}, {2, 2}, {3, 3}}
	s.SetAudio(1000, orig)
	require.NoError(t, s.Apply(wavedit.ReverseOp))
	require.NoError(t, s.Apply(wavedit.DecelerateOp))
	require.Equal(t, 5, s.Len())
	require.True(t, s.Undo())
	require.Equal(t, wavedit.Sequence{{3, 3}, {2, 2}, {1, 1}}, s.Audio())
	require.True(t, s.Undo())
	require.Equal(t, orig, s.Audio())
	require.False(t, s.Undo())
	require.True(t, s.Redo())
	require.True(t, s.Redo())
	require.Equal(t, 5, s.Len())
	require.False(t, s.Redo())
	require.True(t, s.Undo())
	require.NoError(t, s.Apply(wavedit.AccelerateOp))
	require.False(t, s.CanRedo(), "a new edit clears the redo stack")
}

func TestUndoIsBounded(t *testing.T) {
	s := session.New(nil)
	s.MaxUndo = 2
	s.SetAudio(1000, wavedit.Sequence{{1, 1}, {2, 2}, {3, 3}, {4, 4}})
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Apply(wavedit.ReverseOp))
	}
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	require.False(t, s.Undo())
}

func TestVolumeFactor(t *testing.T) {
	s := session.New(nil)
	s.VolumeFactor = 2
	s.SetAudio(1000, wavedit.Sequence{{100, -100}})
	require.NoError(t, s.Apply(wavedit.IncreaseVolumeOp))
	require.Equal(t, wavedit.Sequence{{200, -200}}, s.Audio())
}
