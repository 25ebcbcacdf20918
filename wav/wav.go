// Package wav reads and writes stereo 16-bit PCM .wav files and note scripts
// for the editor.
package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/vsariola/wavedit"
)

const (
	bitDepth  = 16
	numChans  = 2
	pcmFormat = 1
)

// Files implements wavedit.Loader, wavedit.Writer and wavedit.ScriptReader on
// the local file system.
type Files struct{}

var (
	_ wavedit.Loader       = Files{}
	_ wavedit.Writer       = Files{}
	_ wavedit.ScriptReader = Files{}
)

func (Files) Load(name string) (int, wavedit.Sequence, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	return Decode(f)
}

func (Files) Write(name string, frameRate int, s wavedit.Sequence) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Encode(f, frameRate, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (Files) ReadScript(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode reads a 16-bit PCM .wav stream. Mono files are loaded with the same
// signal on both channels.
func Decode(r io.ReadSeeker) (int, wavedit.Sequence, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return 0, nil, errors.New("not a valid WAV file")
	}
	if decoder.WavAudioFormat != pcmFormat {
		return 0, nil, fmt.Errorf("unsupported WAV format %d, only PCM is supported", decoder.WavAudioFormat)
	}
	if decoder.BitDepth != bitDepth {
		return 0, nil, fmt.Errorf("unsupported bit depth %d, only 16-bit audio is supported", decoder.BitDepth)
	}
	chans := int(decoder.NumChans)
	if chans != 1 && chans != 2 {
		return 0, nil, fmt.Errorf("unsupported number of channels %d", chans)
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return 0, nil, fmt.Errorf("could not decode PCM data: %w", err)
	}
	frames := len(buf.Data) / chans
	s := make(wavedit.Sequence, frames)
	for i := range s {
		if chans == 1 {
			s[i] = wavedit.Sample{buf.Data[i], buf.Data[i]}
		} else {
			s[i] = wavedit.Sample{buf.Data[2*i], buf.Data[2*i+1]}
		}
	}
	return int(decoder.SampleRate), s, nil
}

// Encode writes the sequence as a stereo 16-bit PCM .wav stream. Values are
// clamped to the 16-bit range.
func Encode(w io.WriteSeeker, frameRate int, s wavedit.Sequence) error {
	if frameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d", frameRate)
	}
	enc := wav.NewEncoder(w, frameRate, bitDepth, numChans, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  frameRate,
		},
		Data:           make([]int, numChans*len(s)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range s {
		c := v.Clamp()
		buf.Data[2*i] = c[0]
		buf.Data[2*i+1] = c[1]
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("could not write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not finalize WAV header: %w", err)
	}
	return nil
}
