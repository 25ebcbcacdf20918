package wavedit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseScript reads a composition script of whitespace separated note symbol
// and duration pairs, e.g. "A 16 Q 4 C 8". A trailing note without a duration
// is ignored. Durations above MaxDuration are rejected.
func ParseScript(text string) ([]NoteDirection, error) {
	tokens := strings.Fields(text)
	ret := make([]NoteDirection, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		duration, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: note %d (%s) has duration %q, expected an integer", ErrMalformedScript, i/2+1, tokens[i], tokens[i+1])
		}
		if duration > MaxDuration {
			return nil, fmt.Errorf("%w: note %d (%s) has duration %d, the maximum is %d", ErrMalformedScript, i/2+1, tokens[i], duration, MaxDuration)
		}
		ret = append(ret, NoteDirection{Note: tokens[i], Duration: duration})
	}
	return ret, nil
}
