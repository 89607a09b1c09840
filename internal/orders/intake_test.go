package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CharloYT/Timetable/internal/activity"
)

type memStore struct {
	customers map[int64]Person
	employees map[int64]Person
	products  map[int64]*Product

	productReads int
	committed    []Draft
	nextID       int64
	failCommit   error
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int64]Person{1: {ID: 1, Name: "Ada Lovelace"}},
		employees: map[int64]Person{2: {ID: 2, Name: "Grace Hopper"}},
		products: map[int64]*Product{
			10: {ID: 10, Name: "Widget", Stock: 5, PriceCents: 999, CategoryID: 1},
		},
	}
}

func (m *memStore) Customer(_ context.Context, id int64) (*Person, error) {
	if p, ok := m.customers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memStore) Employee(_ context.Context, id int64) (*Person, error) {
	if p, ok := m.employees[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memStore) Product(_ context.Context, id int64) (*Product, error) {
	m.productReads++
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// CommitOrder mirrors the real repo's all-or-nothing contract: either every
// line lands and every stock decrement applies, or nothing changes.
func (m *memStore) CommitOrder(_ context.Context, d Draft) (*Committed, error) {
	if m.failCommit != nil {
		return nil, &ProcessingError{Err: m.failCommit}
	}
	for _, ln := range d.Lines {
		if m.products[ln.ProductID].Stock < ln.Quantity {
			return nil, &ProcessingError{Err: &StockUpdateError{ProductName: ln.ProductName}}
		}
	}
	for _, ln := range d.Lines {
		m.products[ln.ProductID].Stock -= ln.Quantity
	}
	m.nextID++
	m.committed = append(m.committed, d)
	return &Committed{OrderID: m.nextID, OrderDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)}, nil
}

type recordedEvent struct {
	action, description string
	actorID             int64
}

type captureRecorder struct{ events []recordedEvent }

func (c *captureRecorder) Record(_ context.Context, action, description string, actorID int64) {
	c.events = append(c.events, recordedEvent{action, description, actorID})
}

func newService(store Store) (*Service, *captureRecorder) {
	rec := &captureRecorder{}
	return &Service{Store: store, Recorder: rec}, rec
}

func i64(v int64) *int64 { return &v }
func itemsJSON(t *testing.T, items []ItemRequest) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(items)
	require.NoError(t, err)
	return b
}

func itemPtr(productID int64, qty int, price float64) ItemRequest {
	return ItemRequest{ProductID: &productID, Quantity: &qty, Price: &price}
}

func TestPlaceOrder_Success(t *testing.T) {
	store := newMemStore()
	svc, rec := newService(store)

	conf, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      itemsJSON(t, []ItemRequest{itemPtr(10, 2, 9.99)}),
		Notes:      "  gift wrap  ",
	}, 7)

	require.NoError(t, err)
	require.Equal(t, int64(1), conf.OrderID)
	require.Equal(t, "Ada Lovelace", conf.Customer.Name)
	require.Equal(t, "Grace Hopper", conf.Employee.Name)
	require.Equal(t, 19.98, conf.TotalAmount)
	require.Equal(t, "$19.98", conf.TotalAmountFormatted)
	require.Equal(t, StatusPending, conf.Status)
	require.Equal(t, 1, conf.ItemCount)
	require.Equal(t, "gift wrap", conf.Notes)
	require.Equal(t, "2026-08-30", conf.OrderDate)

	require.Len(t, conf.Items, 1)
	require.Equal(t, "Widget", conf.Items[0].ProductName)
	require.Equal(t, 9.99, conf.Items[0].UnitPrice)
	require.Equal(t, 19.98, conf.Items[0].LineTotal)
	require.False(t, conf.Items[0].PriceMismatch)

	require.Equal(t, 3, store.products[10].Stock)
	require.Len(t, rec.events, 1)
	require.Equal(t, activity.ActionOrderCreated, rec.events[0].action)
	require.Contains(t, rec.events[0].description, "Order #1 created for customer Ada Lovelace by Grace Hopper")
	require.Equal(t, int64(7), rec.events[0].actorID)
}

func TestPlaceOrder_TotalIsSumOfLines(t *testing.T) {
	store := newMemStore()
	store.products[11] = &Product{ID: 11, Name: "Gadget", Stock: 10, PriceCents: 1250, CategoryID: 1}
	svc, _ := newService(store)

	conf, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{
			itemPtr(10, 3, 9.99),
			itemPtr(11, 4, 12.50),
		}),
	}, 0)

	require.NoError(t, err)
	var sum float64
	for _, ln := range conf.Items {
		sum += ln.LineTotal
	}
	require.InDelta(t, sum, conf.TotalAmount, 1e-9)
	require.Equal(t, "$79.97", conf.TotalAmountFormatted)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	store := newMemStore()
	svc, rec := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      itemsJSON(t, []ItemRequest{itemPtr(10, 6, 9.99)}),
	}, 0)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 0, stockErr.Index)
	require.Contains(t, err.Error(), "Available: 5, Requested: 6")

	// advisory failure: nothing persisted, stock untouched
	require.Equal(t, 5, store.products[10].Stock)
	require.Empty(t, store.committed)
	require.Equal(t, activity.ActionOrderCreationFailed, rec.events[0].action)
}

func TestPlaceOrder_PriceOverride(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	conf, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      itemsJSON(t, []ItemRequest{itemPtr(10, 2, 5.00)}),
	}, 0)

	require.NoError(t, err)
	require.Equal(t, 9.99, conf.Items[0].UnitPrice)
	require.Equal(t, 19.98, conf.Items[0].LineTotal)
	require.Equal(t, 19.98, conf.TotalAmount)
	require.True(t, conf.Items[0].PriceMismatch)

	// the committed line must carry the authoritative price, not 5.00
	require.Equal(t, int64(999), store.committed[0].Lines[0].UnitPriceCents)
}

func TestPlaceOrder_PriceWithinTolerance(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	conf, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      itemsJSON(t, []ItemRequest{itemPtr(10, 1, 9.98)}),
	}, 0)

	require.NoError(t, err)
	require.Equal(t, 9.98, conf.Items[0].UnitPrice)
	require.False(t, conf.Items[0].PriceMismatch)
}

func TestPlaceOrder_MissingFieldsCombined(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{}, 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, err.Error(), "customer_id")
	require.Contains(t, err.Error(), "employee_id")
	require.Contains(t, err.Error(), "items")
	require.Empty(t, store.committed)
}

func TestPlaceOrder_MissingItemsOnly_NoProductReads(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
	}, 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, err.Error(), "items")
	require.Equal(t, 0, store.productReads)
}

func TestPlaceOrder_ItemsNotAList(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      json.RawMessage(`"widget"`),
	}, 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Order items must be a list", err.Error())
}

func TestPlaceOrder_EmptyItemList(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      json.RawMessage(`[]`),
	}, 0)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Order must contain at least one item", err.Error())
}

func TestPlaceOrder_ItemErrorsNameIndex(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, Request{
		CustomerID: i64(1), EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{{ProductID: i64(10)}}),
	}, 0)
	require.EqualError(t, err, "Item 0: Missing required fields (product_id, quantity, price)")

	_, err = svc.PlaceOrder(ctx, Request{
		CustomerID: i64(1), EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{
			itemPtr(10, 1, 9.99),
			itemPtr(10, 0, 9.99),
		}),
	}, 0)
	require.EqualError(t, err, "Item 1: Quantity must be greater than 0")

	_, err = svc.PlaceOrder(ctx, Request{
		CustomerID: i64(1), EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{itemPtr(-3, 1, 9.99)}),
	}, 0)
	require.EqualError(t, err, "Item 0: Invalid product ID")

	_, err = svc.PlaceOrder(ctx, Request{
		CustomerID: i64(1), EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{itemPtr(10, 1, -1)}),
	}, 0)
	require.EqualError(t, err, "Item 0: Price must be greater than 0")

	_, err = svc.PlaceOrder(ctx, Request{
		CustomerID: i64(1), EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{
			itemPtr(10, 1, 9.99),
			itemPtr(404, 1, 9.99),
		}),
	}, 0)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	require.Equal(t, "product", nfErr.Kind)
	require.EqualError(t, err, "Item 1: Product not found")
}

func TestPlaceOrder_UnknownReferences(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(store)
	ctx := context.Background()
	items := itemsJSON(t, []ItemRequest{itemPtr(10, 1, 9.99)})

	_, err := svc.PlaceOrder(ctx, Request{CustomerID: i64(99), EmployeeID: i64(2), Items: items}, 0)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	require.Equal(t, "customer", nfErr.Kind)

	_, err = svc.PlaceOrder(ctx, Request{CustomerID: i64(1), EmployeeID: i64(99), Items: items}, 0)
	require.ErrorAs(t, err, &nfErr)
	require.Equal(t, "employee", nfErr.Kind)

	// a dangling customer short-circuits before any product read
	require.Equal(t, 0, store.productReads)
}

func TestPlaceOrder_CommitFailureIsProcessingError(t *testing.T) {
	store := newMemStore()
	store.failCommit = errors.New("connection reset")
	svc, rec := newService(store)

	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items:      itemsJSON(t, []ItemRequest{itemPtr(10, 2, 9.99)}),
	}, 3)

	var pErr *ProcessingError
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, 5, store.products[10].Stock)
	require.Empty(t, store.committed)
	require.Equal(t, activity.ActionOrderCreationFailed, rec.events[0].action)
	require.Equal(t, int64(3), rec.events[0].actorID)
}

func TestPlaceOrder_StockRaceRollsBackEverything(t *testing.T) {
	store := newMemStore()
	store.products[11] = &Product{ID: 11, Name: "Gadget", Stock: 1, PriceCents: 100, CategoryID: 1}
	raced := &racingStore{memStore: store, drainID: 11}
	svc, _ := newService(raced)

	// Product 11 passes validation with stock 1, then loses its stock to a
	// concurrent transaction before the commit applies.
	_, err := svc.PlaceOrder(context.Background(), Request{
		CustomerID: i64(1),
		EmployeeID: i64(2),
		Items: itemsJSON(t, []ItemRequest{
			itemPtr(10, 2, 9.99),
			itemPtr(11, 1, 1.00),
		}),
	}, 0)

	var pErr *ProcessingError
	require.ErrorAs(t, err, &pErr)
	var suErr *StockUpdateError
	require.ErrorAs(t, err, &suErr)
	require.Equal(t, "Gadget", suErr.ProductName)

	// all-or-nothing: the first line's decrement did not stick either
	require.Equal(t, 5, store.products[10].Stock)
	require.Empty(t, store.committed)
}

// racingStore drains one product's stock between validation and commit.
type racingStore struct {
	*memStore
	drainID int64
}

func (r *racingStore) CommitOrder(ctx context.Context, d Draft) (*Committed, error) {
	r.products[r.drainID].Stock = 0
	return r.memStore.CommitOrder(ctx, d)
}
