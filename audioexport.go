package wavedit

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Raw returns the sequence as interleaved little-endian signed 16-bit PCM, L
// before R. Values outside the 16-bit range are clamped.
func Raw(s Sequence) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(len(s) * 4)
	if err := rawToBuffer(s, buf); err != nil {
		return nil, fmt.Errorf("Raw failed: %v", err)
	}
	return buf.Bytes(), nil
}

func rawToBuffer(s Sequence, buf *bytes.Buffer) error {
	int16data := make([]int16, 2*len(s))
	for i, v := range s {
		c := v.Clamp()
		int16data[2*i] = int16(c[0])
		int16data[2*i+1] = int16(c[1])
	}
	if err := binary.Write(buf, binary.LittleEndian, int16data); err != nil {
		return fmt.Errorf("could not binary write data to binary buffer: %v", err)
	}
	return nil
}
