package timezone

import (
	"fmt"
	"time"
)

// Normalizer convierte timestamps a una zona horaria fija de display.
// Los timestamps se persisten en UTC; la API los presenta siempre en la zona
// del proyecto (por defecto America/Sao_Paulo).
type Normalizer struct {
	loc *time.Location
}

// New carga la zona horaria indicada.
func New(name string) (*Normalizer, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", name, err)
	}
	return &Normalizer{loc: loc}, nil
}

// Normalize devuelve el instante expresado en la zona de display.
func (n *Normalizer) Normalize(t time.Time) time.Time {
	return t.In(n.loc)
}

// Location expone la zona cargada.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}
