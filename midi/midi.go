// Package midi exports note directions as Standard MIDI Files.
package midi

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vsariola/wavedit"
)

const (
	// Tempo makes 16 sixteenth notes last one second, matching the synthesizer.
	Tempo    = 240
	channel  = 0
	velocity = 100
)

var keys = map[string]uint8{
	"A": 69,
	"B": 71,
	"C": 72,
	"D": 74,
	"E": 76,
	"F": 77,
	"G": 79,
}

// Key returns the MIDI key number closest to the synthesized pitch of a note
// symbol.
func Key(note string) (uint8, bool) {
	k, ok := keys[note]
	return k, ok
}

// Song converts the directions into a single track SMF. Silence becomes a rest;
// unknown notes and durations outside 1..MaxDuration are skipped.
func Song(directions []wavedit.NoteDirection) (*smf.SMF, error) {
	s := smf.New()
	ticks := smf.MetricTicks(96)
	s.TimeFormat = ticks
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(Tempo))
	tr.Add(0, smf.MetaMeter(4, 4))
	var rest uint32
	for _, d := range directions {
		if d.Duration <= 0 || d.Duration > wavedit.MaxDuration {
			continue
		}
		length := uint32(d.Duration) * ticks.Ticks16th()
		if d.Note == wavedit.Silence {
			rest += length
			continue
		}
		key, ok := Key(d.Note)
		if !ok {
			continue
		}
		tr.Add(rest, midi.NoteOn(channel, key, velocity))
		tr.Add(length, midi.NoteOff(channel, key))
		rest = 0
	}
	tr.Close(rest)
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

// Export writes the directions as a Standard MIDI File.
func Export(w io.Writer, directions []wavedit.NoteDirection) error {
	s, err := Song(directions)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write MIDI file: %w", err)
	}
	return nil
}
