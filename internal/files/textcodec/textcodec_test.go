package textcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_HighBytes(t *testing.T) {
	// 0xE4 = ä, 0xB0 = °
	s, err := Decode([]byte{'T', 0xE4, 'x', 0xB0})
	require.NoError(t, err)
	assert.Equal(t, "Täx°", s)
}

func TestRoundTrip_AllBytes(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}

	s, err := Decode(raw)
	require.NoError(t, err)

	back, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestEncode_NoBOM(t *testing.T) {
	out, err := Encode("PROGRAM")
	require.NoError(t, err)
	assert.Equal(t, []byte("PROGRAM"), out)
}

func TestEncode_UnsupportedRuneReplaced(t *testing.T) {
	out, err := Encode("a€b")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, byte('a'), out[0])
	assert.Equal(t, byte('b'), out[2])
}

func TestDecodeLenient(t *testing.T) {
	assert.Equal(t, "abc", DecodeLenient([]byte("abc")))
}
