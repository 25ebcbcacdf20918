package wavedit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation is one of the transforms that can be applied to a Sequence during
// an edit session.
type Operation int

const (
	ReverseOp Operation = iota
	AccelerateOp
	DecelerateOp
	IncreaseVolumeOp
	DecreaseVolumeOp
	SmoothOp
	NumOperations
)

var operationNames = [NumOperations]string{
	ReverseOp:        "reverse",
	AccelerateOp:     "accelerate",
	DecelerateOp:     "decelerate",
	IncreaseVolumeOp: "increase_volume",
	DecreaseVolumeOp: "decrease_volume",
	SmoothOp:         "smooth",
}

var titleCaser = cases.Title(language.English)

// Operations lists all operations in menu order.
func Operations() []Operation {
	ret := make([]Operation, NumOperations)
	for i := range ret {
		ret[i] = Operation(i)
	}
	return ret
}

func (o Operation) String() string {
	if o < 0 || o >= NumOperations {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

// Title returns a human readable name, e.g. "Increase Volume".
func (o Operation) Title() string {
	return titleCaser.String(strings.ReplaceAll(o.String(), "_", " "))
}

// ParseOperation finds the operation by its name. Names are matched case
// insensitively, and dashes or spaces can be used in place of underscores.
func ParseOperation(name string) (Operation, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for i, s := range operationNames {
		if s == n {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

// MarshalText implements encoding.TextMarshaler so operations can be used in
// yaml and json documents.
func (o Operation) MarshalText() ([]byte, error) {
	if o < 0 || o >= NumOperations {
		return nil, fmt.Errorf("invalid operation %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Apply runs the operation on s, using VolumeFactor for the volume operations.
func (o Operation) Apply(s Sequence) (Sequence, error) {
	return o.ApplyFactor(s, VolumeFactor)
}

// ApplyFactor runs the operation on s, using factor for the volume operations.
func (o Operation) ApplyFactor(s Sequence, factor float64) (Sequence, error) {
	switch o {
	case ReverseOp:
		return Reverse(s), nil
	case AccelerateOp:
		return Accelerate(s), nil
	case DecelerateOp:
		return Decelerate(s)
	case IncreaseVolumeOp:
		return Amplify(s, factor), nil
	case DecreaseVolumeOp:
		return Attenuate(s, factor), nil
	case SmoothOp:
		return Smooth(s)
	}
	return nil, fmt.Errorf("invalid operation %d", int(o))
}
