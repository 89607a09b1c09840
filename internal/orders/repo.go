package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrInvalidTransition = errors.New("invalid status transition")

func (r *Repo) Customer(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := r.DB.QueryRow(ctx, `
		SELECT customer_id, first_name || ' ' || last_name
		FROM customers WHERE customer_id = $1`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Employee(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := r.DB.QueryRow(ctx, `
		SELECT employee_id, first_name || ' ' || last_name
		FROM employees WHERE employee_id = $1`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Product(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT product_id, product_name, stock_quantity, price_cents, category_id
		FROM products WHERE product_id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Stock, &p.PriceCents, &p.CategoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CommitOrder applies a validated draft as one transaction: order header,
// line rows, guarded stock decrements, optional notes. Any failure rolls
// the whole unit back and surfaces as a ProcessingError.
func (r *Repo) CommitOrder(ctx context.Context, d Draft) (*Committed, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &ProcessingError{Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var out Committed
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(customer_id, employee_id, order_date, total_amount_cents, order_status)
		VALUES ($1, $2, CURRENT_DATE, $3, 'pending')
		RETURNING order_id, order_date`,
		d.CustomerID, d.EmployeeID, d.TotalCents).Scan(&out.OrderID, &out.OrderDate)
	if err != nil {
		return nil, &ProcessingError{Err: err}
	}
	if out.OrderID == 0 {
		return nil, &ProcessingError{Err: errors.New("failed to create order: no id returned")}
	}

	for _, ln := range d.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_details(order_id, product_id, quantity, unit_price_cents, line_total_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			out.OrderID, ln.ProductID, ln.Quantity, ln.UnitPriceCents, ln.LineTotalCents)
		if err != nil {
			return nil, &ProcessingError{Err: err}
		}

		// The guard keeps stock non-negative under concurrent intake; a
		// zero row count means another transaction won the stock.
		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock_quantity = stock_quantity - $2
			WHERE product_id = $1 AND stock_quantity >= $2`,
			ln.ProductID, ln.Quantity)
		if err != nil {
			return nil, &ProcessingError{Err: err}
		}
		if ct.RowsAffected() != 1 {
			return nil, &ProcessingError{Err: &StockUpdateError{ProductName: ln.ProductName}}
		}
	}

	if notes := strings.TrimSpace(d.Notes); notes != "" {
		if _, err := tx.Exec(ctx, `UPDATE orders SET notes = $1 WHERE order_id = $2`, notes, out.OrderID); err != nil {
			return nil, &ProcessingError{Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &ProcessingError{Err: err}
	}
	return &out, nil
}

func (r *Repo) OrderStatus(ctx context.Context, orderID int64) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT order_status FROM orders WHERE order_id = $1`, orderID).Scan(&s)
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// UpdateOrderStatus moves an order along the lifecycle, refusing
// transitions the state machine does not allow.
func (r *Repo) UpdateOrderStatus(ctx context.Context, orderID int64, to Status) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cur string
	if err := tx.QueryRow(ctx, `SELECT order_status FROM orders WHERE order_id = $1 FOR UPDATE`, orderID).Scan(&cur); err != nil {
		return err
	}
	if !CanTransition(Status(cur), to) {
		return ErrInvalidTransition
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET order_status = $1 WHERE order_id = $2`, string(to), orderID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
