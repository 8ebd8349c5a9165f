package packing_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/entity"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para tests del motor: implementa los puertos de
// repositorio sobre mapas y simula la atomicidad de la transacción con
// snapshot + restore en caso de error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	nextID     int64
	orders     map[int64]*entity.Order
	orderLines map[int64]*entity.OrderLine
	variants   map[int64]*entity.ItemVariant
	stock      map[int64]*entity.StockEntry
	boxes      map[int64]*entity.Box
	boxItems   map[int64]*entity.BoxLineItem
	outputs    map[int64]*entity.OutputRecord
	users      map[int64]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[int64]*entity.Order{},
		orderLines: map[int64]*entity.OrderLine{},
		variants:   map[int64]*entity.ItemVariant{},
		stock:      map[int64]*entity.StockEntry{},
		boxes:      map[int64]*entity.Box{},
		boxItems:   map[int64]*entity.BoxLineItem{},
		outputs:    map[int64]*entity.OutputRecord{},
		users:      map[int64]*entity.User{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// snapshot copia profunda para restaurar el estado si la "transacción" falla.
func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.orderLines {
		cp := *v
		c.orderLines[k] = &cp
	}
	for k, v := range s.variants {
		cp := *v
		cp.Components = append([]entity.KitComponent(nil), v.Components...)
		c.variants[k] = &cp
	}
	for k, v := range s.stock {
		cp := *v
		c.stock[k] = &cp
	}
	for k, v := range s.boxes {
		cp := *v
		c.boxes[k] = &cp
	}
	for k, v := range s.boxItems {
		cp := *v
		c.boxItems[k] = &cp
	}
	for k, v := range s.outputs {
		cp := *v
		if v.KitOriginVariantID != nil {
			origin := *v.KitOriginVariantID
			cp.KitOriginVariantID = &origin
		}
		c.outputs[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.nextID = snap.nextID
	s.orders = snap.orders
	s.orderLines = snap.orderLines
	s.variants = snap.variants
	s.stock = snap.stock
	s.boxes = snap.boxes
	s.boxItems = snap.boxItems
	s.outputs = snap.outputs
	s.users = snap.users
}

// ───── seeding ─────

func (s *memStore) addUser(name string) int64 {
	id := s.id()
	s.users[id] = &entity.User{ID: id, Name: name}
	return id
}

func (s *memStore) addVariant(itemName, gender, size string) int64 {
	id := s.id()
	s.variants[id] = &entity.ItemVariant{ID: id, ItemName: itemName, Gender: gender, Size: size}
	return id
}

func (s *memStore) addKit(itemName string, comps ...entity.KitComponent) int64 {
	id := s.id()
	s.variants[id] = &entity.ItemVariant{ID: id, ItemName: itemName, Gender: entity.GenderUnisex, Size: "U", IsKit: true, Components: comps}
	return id
}

func (s *memStore) addStock(variantID, qty int64) {
	s.stock[variantID] = &entity.StockEntry{VariantID: variantID, QuantityOnHand: qty}
}

func (s *memStore) addOrder(status string) int64 {
	id := s.id()
	s.orders[id] = &entity.Order{ID: id, SchoolID: 1, ProjectID: 1, Status: status}
	return id
}

func (s *memStore) addOrderLine(orderID, variantID, requested, fulfilled int64) int64 {
	id := s.id()
	s.orderLines[id] = &entity.OrderLine{ID: id, OrderID: orderID, VariantID: variantID, RequestedQty: requested, FulfilledQty: fulfilled}
	return id
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake sobre el almacén
// ──────────────────────────────────────────────────────────────────────────────

type fakeBoxRepo struct{ s *memStore }

func (r fakeBoxRepo) Create(box *entity.Box) error {
	for _, b := range r.s.boxes {
		if b.OrderID == box.OrderID && b.BoxNumber == box.BoxNumber {
			return domain.ErrDuplicate
		}
	}
	box.ID = r.s.id()
	header := *box
	header.Items = nil
	r.s.boxes[box.ID] = &header
	return nil
}

func (r fakeBoxRepo) GetByID(id int64) (*entity.Box, error) {
	b, ok := r.s.boxes[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	items, _ := r.ListLineItems(id)
	cp.Items = items
	return &cp, nil
}

func (r fakeBoxRepo) GetLineItem(boxID, variantID int64) (*entity.BoxLineItem, error) {
	for _, item := range r.s.boxItems {
		if item.BoxID == boxID && item.VariantID == variantID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeBoxRepo) CreateLineItem(item *entity.BoxLineItem) error {
	item.ID = r.s.id()
	cp := *item
	r.s.boxItems[item.ID] = &cp
	return nil
}

func (r fakeBoxRepo) UpdateLineItemQty(itemID, quantity int64) error {
	item, ok := r.s.boxItems[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (r fakeBoxRepo) DeleteLineItem(itemID int64) error {
	if _, ok := r.s.boxItems[itemID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.boxItems, itemID)
	return nil
}

func (r fakeBoxRepo) ListLineItems(boxID int64) ([]entity.BoxLineItem, error) {
	var items []entity.BoxLineItem
	for _, item := range r.s.boxItems {
		if item.BoxID == boxID {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r fakeBoxRepo) UpdateTotalQty(boxID, totalQty int64) error {
	b, ok := r.s.boxes[boxID]
	if !ok {
		return domain.ErrNotFound
	}
	b.TotalQty = totalQty
	return nil
}

func (r fakeBoxRepo) UpdateBoxNumber(boxID int64, boxNumber string) error {
	b, ok := r.s.boxes[boxID]
	if !ok {
		return domain.ErrNotFound
	}
	b.BoxNumber = boxNumber
	return nil
}

func (r fakeBoxRepo) Delete(boxID int64) error {
	if _, ok := r.s.boxes[boxID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.boxes, boxID)
	for id, item := range r.s.boxItems {
		if item.BoxID == boxID {
			delete(r.s.boxItems, id)
		}
	}
	return nil
}

func (r fakeBoxRepo) ListByOrder(orderID int64) ([]entity.Box, error) {
	var boxes []entity.Box
	for _, b := range r.s.boxes {
		if b.OrderID == orderID {
			boxes = append(boxes, *b)
		}
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].ID < boxes[j].ID })
	return boxes, nil
}

func (r fakeBoxRepo) ListSummariesByOrder(orderID int64) ([]repository.BoxSummary, error) {
	boxes, _ := r.ListByOrder(orderID)
	order := r.s.orders[orderID]
	var summaries []repository.BoxSummary
	for _, b := range boxes {
		full, _ := r.GetByID(b.ID)
		name := ""
		if u, ok := r.s.users[b.CreatedBy]; ok {
			name = u.Name
		}
		status := ""
		if order != nil {
			status = order.Status
		}
		summaries = append(summaries, repository.BoxSummary{Box: *full, CreatorName: name, OrderStatus: status})
	}
	// Orden numérico descendente, igual que el adaptador real.
	sort.Slice(summaries, func(i, j int) bool {
		ni, _ := strconv.ParseInt(summaries[i].Box.BoxNumber, 10, 64)
		nj, _ := strconv.ParseInt(summaries[j].Box.BoxNumber, 10, 64)
		return ni > nj
	})
	return summaries, nil
}

func (r fakeBoxRepo) GetDetail(boxID int64) (*repository.BoxDetail, error) {
	box, _ := r.GetByID(boxID)
	if box == nil {
		return nil, nil
	}
	order := r.s.orders[box.OrderID]
	status := ""
	if order != nil {
		status = order.Status
	}
	return &repository.BoxDetail{
		Box:          *box,
		OrderStatus:  status,
		SchoolName:   "Escola Modelo",
		SchoolNumber: "042",
		ProjectName:  "Projeto Uniformes",
	}, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r fakeOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r fakeOrderRepo) UpdateStatus(orderID int64, status string) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r fakeOrderRepo) GetLine(lineID int64) (*entity.OrderLine, error) {
	l, ok := r.s.orderLines[lineID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r fakeOrderRepo) GetLineByVariant(orderID, variantID int64) (*entity.OrderLine, error) {
	for _, l := range r.s.orderLines {
		if l.OrderID == orderID && l.VariantID == variantID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeOrderRepo) UpdateLineFulfilledQty(lineID, fulfilledQty int64) error {
	l, ok := r.s.orderLines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.FulfilledQty = fulfilledQty
	return nil
}

func (r fakeOrderRepo) ListLines(orderID int64) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	for _, l := range r.s.orderLines {
		if l.OrderID == orderID {
			lines = append(lines, *l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

type fakeStockRepo struct{ s *memStore }

func (r fakeStockRepo) Get(variantID int64) (*entity.StockEntry, error) {
	st, ok := r.s.stock[variantID]
	if !ok {
		return &entity.StockEntry{VariantID: variantID}, nil
	}
	cp := *st
	return &cp, nil
}

func (r fakeStockRepo) AdjustQuantity(variantID, delta int64) error {
	st, ok := r.s.stock[variantID]
	if !ok {
		return fmt.Errorf("stock de la variante %d: %w", variantID, domain.ErrNotFound)
	}
	st.QuantityOnHand += delta
	return nil
}

type fakeOutputRepo struct{ s *memStore }

func (r fakeOutputRepo) Create(record *entity.OutputRecord) error {
	record.ID = r.s.id()
	cp := *record
	r.s.outputs[record.ID] = &cp
	return nil
}

func (r fakeOutputRepo) Find(boxID, variantID, orderID int64, kitOriginVariantID *int64) (*entity.OutputRecord, error) {
	for _, rec := range r.s.outputs {
		if rec.BoxID != boxID || rec.StockVariantID != variantID || rec.OrderID != orderID {
			continue
		}
		if (rec.KitOriginVariantID == nil) != (kitOriginVariantID == nil) {
			continue
		}
		if rec.KitOriginVariantID != nil && *rec.KitOriginVariantID != *kitOriginVariantID {
			continue
		}
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r fakeOutputRepo) UpdateQuantity(recordID, quantity int64) error {
	rec, ok := r.s.outputs[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Quantity = quantity
	return nil
}

func (r fakeOutputRepo) Delete(recordID int64) error {
	if _, ok := r.s.outputs[recordID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.outputs, recordID)
	return nil
}

func (r fakeOutputRepo) DeleteByBox(boxID int64) error {
	for id, rec := range r.s.outputs {
		if rec.BoxID == boxID {
			delete(r.s.outputs, id)
		}
	}
	return nil
}

func (r fakeOutputRepo) SummaryByItem() ([]repository.OutputSummaryRow, error) {
	totals := map[string]int64{}
	for _, rec := range r.s.outputs {
		if v, ok := r.s.variants[rec.StockVariantID]; ok {
			totals[v.ItemName] += rec.Quantity
		}
	}
	var rows []repository.OutputSummaryRow
	for name, total := range totals {
		rows = append(rows, repository.OutputSummaryRow{ItemName: name, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	return rows, nil
}

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeVariantRepo struct{ s *memStore }

func (r fakeVariantRepo) GetWithComponents(variantID int64) (*entity.ItemVariant, error) {
	v, ok := r.s.variants[variantID]
	if !ok {
		return nil, nil
	}
	cp := *v
	cp.Components = append([]entity.KitComponent(nil), v.Components...)
	return &cp, nil
}

// fakeTxRunner ejecuta el callback directamente sobre el almacén, con
// snapshot/restore para simular el rollback, y puede inyectar conflictos de
// serialización para probar el reintento.
type fakeTxRunner struct {
	s         *memStore
	conflicts int // intentos que fallarán con ErrConflict antes de dejar pasar
}

func (t *fakeTxRunner) RunSerializable(ctx context.Context, fn func(
	boxRepo repository.BoxRepository,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	variantRepo repository.VariantRepository,
) error) error {
	if t.conflicts > 0 {
		t.conflicts--
		return fmt.Errorf("%w (simulado)", domain.ErrConflict)
	}
	snap := t.s.snapshot()
	err := fn(fakeBoxRepo{t.s}, fakeOrderRepo{t.s}, fakeStockRepo{t.s}, fakeOutputRepo{t.s}, fakeVariantRepo{t.s})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
