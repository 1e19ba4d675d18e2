package execution

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGenesisDumpTotalOnValidLength(t *testing.T) {
	record := make([]byte, genesisRecordSize)
	binary.BigEndian.PutUint32(record[:4], 12345)
	for i := range record[4:] {
		record[4+i] = byte(i)
	}
	data := append(append([]byte{}, record...), record...)

	rows, err := ParseGenesisDump(data)
	require.NoError(t, err)
	require.Len(t, rows, 1) // both records share the same pubkey, so they collapse to one row
}

func TestParseGenesisDumpRejectsNonMultipleOf52(t *testing.T) {
	_, err := ParseGenesisDump(make([]byte, genesisRecordSize+1))
	require.ErrorIs(t, err, ErrMalformedGenesisDump)
}

func TestParseGenesisDumpEmptyIsValid(t *testing.T) {
	rows, err := ParseGenesisDump(nil)
	require.NoError(t, err)
	require.Empty(t, rows)
}
