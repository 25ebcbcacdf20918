// Package session implements an edit session: the audio currently being edited,
// its frame rate and the undo/redo history of the edits.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsariola/wavedit"
)

const DefaultMaxUndo = 256

// Session owns the sequence being edited. A Session is not safe for concurrent
// use; edits are applied one at a time.
type Session struct {
	frameRate int
	audio     wavedit.Sequence
	loaded    bool

	undoStack []snapshot
	redoStack []snapshot

	// MaxUndo bounds the undo and redo stacks. Zero disables undo.
	MaxUndo int
	// VolumeFactor is used by the volume operations.
	VolumeFactor float64

	logger *zap.Logger
}

type snapshot struct {
	frameRate int
	audio     wavedit.Sequence
}

var ErrNoAudio = errors.New("no audio loaded")

// New returns an empty session. A nil logger disables logging.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		MaxUndo:      DefaultMaxUndo,
		VolumeFactor: wavedit.VolumeFactor,
		logger:       logger,
	}
}

func (s *Session) FrameRate() int { return s.frameRate }

// Audio returns a copy of the current sequence.
func (s *Session) Audio() wavedit.Sequence { return s.audio.Copy() }

func (s *Session) Len() int { return len(s.audio) }

func (s *Session) Loaded() bool { return s.loaded }

// SetAudio replaces the session audio. The previous state can be restored
// with Undo.
func (s *Session) SetAudio(frameRate int, audio wavedit.Sequence) {
	s.saveUndo()
	s.frameRate = frameRate
	s.audio = audio.Copy()
	s.loaded = true
}

// Load replaces the session audio with the contents of a file.
func (s *Session) Load(loader wavedit.Loader, name string) error {
	frameRate, audio, err := loader.Load(name)
	if err != nil {
		s.logger.Warn("load failed", zap.String("file", name), zap.Error(err))
		return fmt.Errorf("%w %v: %v", wavedit.ErrLoadFailed, name, err)
	}
	s.SetAudio(frameRate, audio)
	s.logger.Info("loaded audio", zap.String("file", name), zap.Int("frameRate", frameRate), zap.Int("samples", len(audio)))
	return nil
}

// Compose replaces the session audio with a synthesized note script. It
// returns the number of directions skipped because of unknown note symbols.
func (s *Session) Compose(reader wavedit.ScriptReader, name string) (skipped int, err error) {
	text, err := reader.ReadScript(name)
	if err != nil {
		s.logger.Warn("reading script failed", zap.String("file", name), zap.Error(err))
		return 0, fmt.Errorf("%w %v: %v", wavedit.ErrReadFailed, name, err)
	}
	directions, err := wavedit.ParseScript(text)
	if err != nil {
		s.logger.Warn("parsing script failed", zap.String("file", name), zap.Error(err))
		return 0, err
	}
	audio, skipped := wavedit.Synthesize(directions)
	if skipped > 0 {
		s.logger.Warn("skipped unknown notes", zap.String("file", name), zap.Int("skipped", skipped))
	}
	s.SetAudio(wavedit.SampleRate, audio)
	s.logger.Info("composed audio", zap.String("file", name), zap.Int("notes", len(directions)), zap.Int("samples", len(audio)))
	return skipped, nil
}

// Apply runs the operation on the session audio. If the operation fails, the
// session is left unchanged.
func (s *Session) Apply(op wavedit.Operation) error {
	if !s.loaded {
		return ErrNoAudio
	}
	audio, err := op.ApplyFactor(s.audio, s.VolumeFactor)
	if err != nil {
		s.logger.Warn("operation rejected", zap.Stringer("op", op), zap.Int("samples", len(s.audio)), zap.Error(err))
		return fmt.Errorf("%v: %w", op.Title(), err)
	}
	s.saveUndo()
	s.audio = audio
	s.logger.Debug("applied operation", zap.Stringer("op", op), zap.Int("samples", len(audio)))
	return nil
}

// Save writes the session audio.
func (s *Session) Save(writer wavedit.Writer, name string) error {
	if !s.loaded {
		return ErrNoAudio
	}
	if err := writer.Write(name, s.frameRate, s.audio); err != nil {
		s.logger.Warn("save failed", zap.String("file", name), zap.Error(err))
		return fmt.Errorf("%w %v: %v", wavedit.ErrSaveFailed, name, err)
	}
	s.logger.Info("saved audio", zap.String("file", name), zap.Int("samples", len(s.audio)))
	return nil
}

func (s *Session) CanUndo() bool { return len(s.undoStack) > 0 }
func (s *Session) CanRedo() bool { return len(s.redoStack) > 0 }

// Undo restores the state before the last change. It returns false if there
// is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.undoStack) == 0 {
		return false
	}
	s.redoStack = push(s.redoStack, s.current(), s.MaxUndo)
	s.restore(s.undoStack[len(s.undoStack)-1])
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.logger.Debug("undo", zap.Int("samples", len(s.audio)))
	return true
}

// Redo reapplies the last undone change. It returns false if there is nothing
// to redo.
func (s *Session) Redo() bool {
	if len(s.redoStack) == 0 {
		return false
	}
	s.undoStack = push(s.undoStack, s.current(), s.MaxUndo)
	s.restore(s.redoStack[len(s.redoStack)-1])
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.logger.Debug("redo", zap.Int("samples", len(s.audio)))
	return true
}

// sequences are never modified in place, so snapshots can share them
func (s *Session) current() snapshot {
	return snapshot{frameRate: s.frameRate, audio: s.audio}
}

func (s *Session) restore(snap snapshot) {
	s.frameRate = snap.frameRate
	s.audio = snap.audio
	s.loaded = true
}

func (s *Session) saveUndo() {
	if s.loaded {
		s.undoStack = push(s.undoStack, s.current(), s.MaxUndo)
	}
	s.redoStack = s.redoStack[:0]
}

func push(stack []snapshot, snap snapshot, limit int) []snapshot {
	if limit <= 0 {
		return stack[:0]
	}
	if len(stack) >= limit {
		stack = stack[len(stack)-limit+1:]
	}
	return append(stack, snap)
}
