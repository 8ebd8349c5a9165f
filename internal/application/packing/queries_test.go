package packing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformes/expedicao-api/internal/application/packing"
	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/pkg/timezone"
)

func newQueryUC(t *testing.T, s *memStore) *packing.BoxQueryUseCase {
	t.Helper()
	normalizer, err := timezone.New("America/Sao_Paulo")
	require.NoError(t, err)
	return packing.NewBoxQueryUseCase(fakeBoxRepo{s}, normalizer)
}

// El listado ordena por número de caja como valor numérico, descendente: la
// "10" va antes que la "9" aunque lexicográficamente sea al revés.
func TestGetBoxesForOrder_OrdenNumericoDescendente(t *testing.T) {
	s := newMemStore()
	userID := s.addUser("Marcos")
	variantID := s.addVariant("Camiseta", entity.GenderMale, "M")
	s.addStock(variantID, 200)
	orderID := s.addOrder(entity.OrderStatusOpen)
	lineID := s.addOrderLine(orderID, variantID, 100, 0)

	var fulfilled int64
	for _, number := range []string{"9", "10", "2"} {
		fulfilled++
		mustCreateBox(t, s, orderID, number, userID,
			[]packing.BoxLineInput{{VariantID: variantID, Quantity: 1}},
			[]packing.OrderLineDelta{{OrderLineID: lineID, NewFulfilledQty: fulfilled}})
	}

	summaries, err := newQueryUC(t, s).GetBoxesForOrder(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "10", summaries[0].Box.BoxNumber)
	assert.Equal(t, "9", summaries[1].Box.BoxNumber)
	assert.Equal(t, "2", summaries[2].Box.BoxNumber)
	assert.Equal(t, "Marcos", summaries[0].CreatorName)
	assert.Equal(t, entity.OrderStatusOpen, summaries[0].OrderStatus)
}

// Los timestamps salen normalizados a la zona horaria de display.
func TestGetBoxDetail_NormalizaTimestamps(t *testing.T) {
	s := newMemStore()
	userID := s.addUser("Ana")
	variantID := s.addVariant("Camiseta", entity.GenderFemale, "P")
	s.addStock(variantID, 10)
	orderID := s.addOrder(entity.OrderStatusOpen)
	lineID := s.addOrderLine(orderID, variantID, 2, 0)
	box := mustCreateBox(t, s, orderID, "01", userID,
		[]packing.BoxLineInput{{VariantID: variantID, Quantity: 2}},
		[]packing.OrderLineDelta{{OrderLineID: lineID, NewFulfilledQty: 2}})

	// Fija un instante UTC conocido en el almacén.
	utc := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s.boxes[box.ID].CreatedAt = utc
	s.boxes[box.ID].UpdatedAt = utc

	detail, err := newQueryUC(t, s).GetBoxDetail(context.Background(), box.ID)
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", detail.Box.CreatedAt.Location().String())
	assert.True(t, detail.Box.CreatedAt.Equal(utc), "la normalización cambia la zona, no el instante")
	assert.Equal(t, entity.OrderStatusClosed, detail.OrderStatus)
	assert.NotEmpty(t, detail.SchoolName)
}

func TestGetBoxDetail_CajaInexistente(t *testing.T) {
	s := newMemStore()
	_, err := newQueryUC(t, s).GetBoxDetail(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBoxesForOrder_PedidoInvalido(t *testing.T) {
	s := newMemStore()
	_, err := newQueryUC(t, s).GetBoxesForOrder(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El resumen de salidas calcula participación porcentual sobre el total vivo.
func TestSummarize_PorcentajesYTotal(t *testing.T) {
	s := newMemStore()
	userID := s.addUser("Marcos")
	shirtID := s.addVariant("Camiseta", entity.GenderMale, "M")
	pantsID := s.addVariant("Pantalón", entity.GenderMale, "M")
	s.addStock(shirtID, 100)
	s.addStock(pantsID, 100)
	orderID := s.addOrder(entity.OrderStatusOpen)
	shirtLine := s.addOrderLine(orderID, shirtID, 100, 0)
	pantsLine := s.addOrderLine(orderID, pantsID, 100, 0)
	mustCreateBox(t, s, orderID, "01", userID,
		[]packing.BoxLineInput{{VariantID: shirtID, Quantity: 30}, {VariantID: pantsID, Quantity: 10}},
		[]packing.OrderLineDelta{
			{OrderLineID: shirtLine, NewFulfilledQty: 30},
			{OrderLineID: pantsLine, NewFulfilledQty: 10},
		})

	rows, grandTotal, err := packing.NewOutputSummaryUseCase(fakeOutputRepo{s}).Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(40), grandTotal)
	require.Len(t, rows, 2)
	assert.Equal(t, "Camiseta", rows[0].ItemName)
	assert.Equal(t, int64(30), rows[0].Total)
	assert.Equal(t, "75.00%", rows[0].Percent)
	assert.Equal(t, "Pantalón", rows[1].ItemName)
	assert.Equal(t, "25.00%", rows[1].Percent)
}

func TestSummarize_SinSalidas(t *testing.T) {
	rows, grandTotal, err := packing.NewOutputSummaryUseCase(fakeOutputRepo{newMemStore()}).Summarize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, grandTotal)
	assert.Empty(t, rows)
}
