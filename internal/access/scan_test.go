package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanPayload(t *testing.T) {
	id, err := ParseScanPayload(`{"id": 42}`)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// String digits coerce to the same id.
	id, err = ParseScanPayload(`{"id": "42"}`)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseScanPayload("  {\"id\": 7}\n")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestParseScanPayloadMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not-json",
		`{"id": "abc"}`,
		`{"id": 0}`,
		`{"id": -3}`,
		`{"id": 1.5}`,
		`{}`,
	} {
		_, err := ParseScanPayload(raw)
		assert.ErrorIs(t, err, ErrMalformedPayload, "payload %q", raw)
	}
}
