package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformes/expedicao-api/internal/domain"
)

func TestParseBoxNumber(t *testing.T) {
	n, err := ParseBoxNumber("07")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = ParseBoxNumber("120")
	require.NoError(t, err)
	assert.Equal(t, int64(120), n)

	for _, bad := range []string{"", "A1", "1.5", "1-2"} {
		_, err := ParseBoxNumber(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %q", bad)
	}
}

// El decremento conserva el ancho del padding original.
func TestDecrementBoxNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"03", "02"},
		{"10", "09"},
		{"100", "099"},
		{"2", "1"},
	}
	for _, tc := range cases {
		got, err := DecrementBoxNumber(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := DecrementBoxNumber("caja")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
