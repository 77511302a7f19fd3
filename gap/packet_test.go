package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// section builds one advertising data structure: length, type, payload.
func section(t DataType, data ...byte) []byte {
	return append([]byte{byte(len(data) + 1), byte(t)}, data...)
}

func TestDecodeSections(t *testing.T) {
	ss := DecodeSections(section(Flags, 0x06))
	require.Len(t, ss, 1)
	assert.Equal(t, Flags, ss[0].Type)
	assert.Equal(t, []byte{0x06}, ss[0].Data)

	b := append(section(Flags, 0x06), section(CompleteName, 'G', 'o', 'p', 'h', 'e', 'r')...)
	b = append(b, section(TxPower, 0xF6)...)
	ss = DecodeSections(b)
	require.Len(t, ss, 3)
	assert.Equal(t, CompleteName, ss[1].Type)
	assert.Equal(t, "Gopher", string(ss[1].Data))
	assert.Equal(t, TxPower, ss[2].Type)
}

func TestDecodeSectionsEmpty(t *testing.T) {
	assert.Empty(t, DecodeSections(nil))
	assert.Empty(t, DecodeSections([]byte{}))
}

func TestDecodeSectionsTruncated(t *testing.T) {
	// The length byte claims 5 bytes but only 2 follow.
	assert.Empty(t, DecodeSections([]byte{0x05, byte(CompleteName), 'a', 'b'}))

	// A good section followed by a truncated one keeps the good one.
	b := append(section(Flags, 0x06), 0x05, byte(CompleteName), 'a')
	ss := DecodeSections(b)
	require.Len(t, ss, 1)
	assert.Equal(t, Flags, ss[0].Type)

	// A lone trailing length byte is dropped.
	ss = DecodeSections(append(section(Flags, 0x06), 0x03))
	assert.Len(t, ss, 1)
}

func TestDecodeSectionsZeroLength(t *testing.T) {
	// A zero length byte ends parsing; anything after it is padding.
	b := append(section(Flags, 0x06), 0x00, byte(CompleteName), 'x')
	ss := DecodeSections(b)
	require.Len(t, ss, 1)
	assert.Equal(t, Flags, ss[0].Type)
}

func TestDecodeSectionsUnknownType(t *testing.T) {
	ss := DecodeSections(section(DataType(0x7F), 0xAA, 0xBB))
	require.Len(t, ss, 1)
	assert.Equal(t, DataType(0x7F), ss[0].Type)
	assert.Equal(t, []byte{0xAA, 0xBB}, ss[0].Data)
}

func TestDecodeSectionsCopies(t *testing.T) {
	b := section(CompleteName, 'a', 'b')
	ss := DecodeSections(b)
	require.Len(t, ss, 1)
	b[2], b[3] = 'x', 'y'
	assert.Equal(t, []byte{'a', 'b'}, ss[0].Data, "sections own their payload")
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "Flags", Flags.String())
	assert.Equal(t, "Manufacturer Specific Data", ManufacturerSpecific.String())
	assert.Equal(t, "unknown(0x7F)", DataType(0x7F).String())
}
