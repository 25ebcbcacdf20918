// Package oto plays sequences on the default audio device.
package oto

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/vsariola/wavedit"
)

// pollInterval is how often Play checks whether the player has finished.
const pollInterval = 20 * time.Millisecond

// Context is a wavedit.AudioContext on top of oto. Only one Context can exist
// per process, and it plays at a single frame rate.
type Context struct {
	ctx       *oto.Context
	frameRate int
}

var _ wavedit.AudioContext = (*Context)(nil)

// NewContext opens the audio device for stereo 16-bit playback.
func NewContext(frameRate int) (*Context, error) {
	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   frameRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: c, frameRate: frameRate}, nil
}

func (c *Context) FrameRate() int { return c.frameRate }

// Play implements wavedit.AudioContext.
func (c *Context) Play(ctx context.Context, frameRate int, s wavedit.Sequence) error {
	if frameRate != c.frameRate {
		return fmt.Errorf("audio device is open at %d Hz, cannot play %d Hz audio", c.frameRate, frameRate)
	}
	raw, err := wavedit.Raw(s)
	if err != nil {
		return err
	}
	player := c.ctx.NewPlayer(bytes.NewReader(raw))
	defer player.Close()
	player.Play()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("cannot play audio: %w", err)
	}
	return nil
}

// Close suspends the audio device. oto contexts cannot be reopened, so Close
// is final for the process.
func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}
