package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador del catálogo de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// GetWithComponents obtiene la variante con su composición de kit (si aplica);
// nil si no existe.
func (r *VariantRepo) GetWithComponents(variantID int64) (*entity.ItemVariant, error) {
	query := `
		SELECT id, item_name, gender, size, is_kit
		FROM item_variants WHERE id = $1`
	var v entity.ItemVariant
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&v.ID, &v.ItemName, &v.Gender, &v.Size, &v.IsKit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	if !v.IsKit {
		return &v, nil
	}

	compQuery := `
		SELECT component_variant_id, units_per_kit
		FROM kit_components WHERE kit_variant_id = $1
		ORDER BY component_variant_id`
	rows, err := r.q.Query(context.Background(), compQuery, variantID)
	if err != nil {
		return nil, fmt.Errorf("get kit components: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.KitComponent
		if err := rows.Scan(&c.ComponentVariantID, &c.UnitsPerKit); err != nil {
			return nil, fmt.Errorf("scan kit component: %w", err)
		}
		v.Components = append(v.Components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &v, nil
}
