package wavedit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsariola/wavedit"
)

func TestRaw(t *testing.T) {
	raw, err := wavedit.Raw(wavedit.Sequence{{1, -1}, {40000, -40000}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0xff, 0xff, 0xff, 0x7f, 0x00, 0x80}, raw)
}
