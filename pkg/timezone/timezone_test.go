package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n, err := New("America/Sao_Paulo")
	require.NoError(t, err)

	utc := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	got := n.Normalize(utc)

	assert.Equal(t, "America/Sao_Paulo", got.Location().String())
	// Cambia la representación, nunca el instante.
	assert.True(t, got.Equal(utc))
	assert.Equal(t, 9, got.Hour()) // UTC-3
}

func TestNewZonaInvalida(t *testing.T) {
	_, err := New("Planeta/Marte")
	require.Error(t, err)
}
