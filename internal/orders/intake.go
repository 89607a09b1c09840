package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CharloYT/Timetable/internal/activity"
)

// Request is the wire shape of an order submission. Scalar fields are
// pointers so a missing field is distinguishable from a zero value; items
// stay raw until the validator has checked their shape.
type Request struct {
	CustomerID *int64          `json:"customer_id"`
	EmployeeID *int64          `json:"employee_id"`
	Items      json.RawMessage `json:"items"`
	Notes      string          `json:"notes"`
}

type ItemRequest struct {
	ProductID *int64   `json:"product_id"`
	Quantity  *int     `json:"quantity"`
	Price     *float64 `json:"price"`
}

// Line is one committed order line as reported back to the caller.
type Line struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	LineTotal     float64 `json:"line_total"`
	PriceMismatch bool    `json:"price_mismatch"`
}

// Confirmation is the order_details block of a successful intake.
type Confirmation struct {
	OrderID              int64  `json:"order_id"`
	Customer             Person `json:"customer"`
	Employee             Person `json:"employee"`
	OrderDate            string `json:"order_date"`
	TotalAmount          float64 `json:"total_amount"`
	TotalAmountFormatted string `json:"total_amount_formatted"`
	Status               Status `json:"status"`
	Items                []Line `json:"items"`
	ItemCount            int    `json:"item_count"`
	Notes                string `json:"notes"`
}

// Store is the persistence used by the intake flow. Lookups return nil when
// no row matches. CommitOrder applies the draft as one atomic unit and
// wraps every failure in a ProcessingError after rolling back.
type Store interface {
	Customer(ctx context.Context, id int64) (*Person, error)
	Employee(ctx context.Context, id int64) (*Person, error)
	Product(ctx context.Context, id int64) (*Product, error)
	CommitOrder(ctx context.Context, d Draft) (*Committed, error)
}

// Service runs the order intake transaction: validate, resolve references,
// price the lines, then commit. All reads happen before any write.
type Service struct {
	Store    Store
	Recorder activity.Recorder
}

// Prices within this absolute distance (in cents) of the authoritative
// product price are taken as submitted; anything further off is overridden.
const priceToleranceCents = 1

// PlaceOrder processes one order submission for the given actor. The actor
// id is only used for the audit trail.
func (s *Service) PlaceOrder(ctx context.Context, req Request, actorID int64) (*Confirmation, error) {
	conf, err := s.placeOrder(ctx, req)
	if err != nil {
		s.Recorder.Record(ctx, activity.ActionOrderCreationFailed,
			"Order creation failed: "+err.Error(), actorID)
		return nil, err
	}
	s.Recorder.Record(ctx, activity.ActionOrderCreated,
		fmt.Sprintf("Order #%d created for customer %s by %s",
			conf.OrderID, conf.Customer.Name, conf.Employee.Name), actorID)
	return conf, nil
}

func (s *Service) placeOrder(ctx context.Context, req Request) (*Confirmation, error) {
	items, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	customer, err := s.Store.Customer(ctx, *req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &NotFoundError{Kind: "customer", Msg: "Invalid customer ID: Customer not found"}
	}
	employee, err := s.Store.Employee(ctx, *req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", Msg: "Invalid employee ID: Employee not found"}
	}

	draft, err := s.priceLines(ctx, items)
	if err != nil {
		return nil, err
	}
	draft.CustomerID = customer.ID
	draft.EmployeeID = employee.ID
	draft.Notes = strings.TrimSpace(req.Notes)

	committed, err := s.Store.CommitOrder(ctx, *draft)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(draft.Lines))
	for _, ln := range draft.Lines {
		lines = append(lines, Line{
			ProductID:     ln.ProductID,
			ProductName:   ln.ProductName,
			Quantity:      ln.Quantity,
			UnitPrice:     centsToFloat(ln.UnitPriceCents),
			LineTotal:     centsToFloat(ln.LineTotalCents),
			PriceMismatch: ln.PriceMismatch,
		})
	}
	return &Confirmation{
		OrderID:              committed.OrderID,
		Customer:             *customer,
		Employee:             *employee,
		OrderDate:            committed.OrderDate.Format("2006-01-02"),
		TotalAmount:          centsToFloat(draft.TotalCents),
		TotalAmountFormatted: FormatCents(draft.TotalCents),
		Status:               StatusPending,
		Items:                lines,
		ItemCount:            len(lines),
		Notes:                draft.Notes,
	}, nil
}

// validateRequest covers presence and shape of the top-level fields. Every
// missing field is named in one message.
func validateRequest(req Request) ([]ItemRequest, error) {
	var missing []string
	if req.CustomerID == nil || *req.CustomerID == 0 {
		missing = append(missing, "customer_id")
	}
	if req.EmployeeID == nil || *req.EmployeeID == 0 {
		missing = append(missing, "employee_id")
	}
	itemsAbsent := len(req.Items) == 0 || string(req.Items) == "null"
	if itemsAbsent {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return nil, validationf("Missing required fields: %s", strings.Join(missing, ", "))
	}

	var items []ItemRequest
	if err := json.Unmarshal(req.Items, &items); err != nil {
		return nil, validationf("Order items must be a list")
	}
	if len(items) == 0 {
		return nil, validationf("Order must contain at least one item")
	}
	return items, nil
}

// priceLines validates each item in list order and prices it from the
// authoritative product price. No writes happen here.
func (s *Service) priceLines(ctx context.Context, items []ItemRequest) (*Draft, error) {
	draft := &Draft{Lines: make([]DraftLine, 0, len(items))}
	for i, it := range items {
		if it.ProductID == nil || it.Quantity == nil || it.Price == nil {
			return nil, validationf("Item %d: Missing required fields (product_id, quantity, price)", i)
		}
		productID, quantity, price := *it.ProductID, *it.Quantity, *it.Price
		if productID <= 0 {
			return nil, validationf("Item %d: Invalid product ID", i)
		}
		if quantity <= 0 {
			return nil, validationf("Item %d: Quantity must be greater than 0", i)
		}
		if price <= 0 {
			return nil, validationf("Item %d: Price must be greater than 0", i)
		}

		product, err := s.Store.Product(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &NotFoundError{Kind: "product", Msg: fmt.Sprintf("Item %d: Product not found", i)}
		}
		if product.Stock < quantity {
			return nil, &InsufficientStockError{
				Index:     i,
				ProductID: productID,
				Available: product.Stock,
				Requested: quantity,
			}
		}

		// The catalogue price wins when the submitted price is off by more
		// than the tolerance; the override is flagged, not hidden.
		unitCents := toCents(price)
		mismatch := false
		if diff := unitCents - product.PriceCents; diff > priceToleranceCents || diff < -priceToleranceCents {
			unitCents = product.PriceCents
			mismatch = true
		}

		lineTotal := int64(quantity) * unitCents
		draft.Lines = append(draft.Lines, DraftLine{
			ProductID:      productID,
			ProductName:    product.Name,
			Quantity:       quantity,
			UnitPriceCents: unitCents,
			LineTotalCents: lineTotal,
			PriceMismatch:  mismatch,
		})
		draft.TotalCents += lineTotal
	}
	return draft, nil
}
