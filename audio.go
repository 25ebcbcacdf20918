package wavedit

import "context"

type (
	// Loader reads a stereo 16-bit audio file.
	Loader interface {
		Load(name string) (frameRate int, s Sequence, err error)
	}

	// Writer persists audio under the given name.
	Writer interface {
		Write(name string, frameRate int, s Sequence) error
	}

	// ScriptReader returns the text of a note script.
	ScriptReader interface {
		ReadScript(name string) (string, error)
	}

	// AudioContext plays sequences on an audio device opened at FrameRate.
	// Play blocks until the sequence has been played or ctx is done.
	AudioContext interface {
		Play(ctx context.Context, frameRate int, s Sequence) error
		FrameRate() int
		Close() error
	}
)
