package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CharloYT/Timetable/internal/orders"
)

type Repo struct{ DB *pgxpool.Pool }

type RecentOrder struct {
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	OrderDate    time.Time `json:"order_date"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"order_status"`
}

type LowStockProduct struct {
	Name  string `json:"product_name"`
	Stock int    `json:"stock_quantity"`
}

type EmployeeSales struct {
	EmployeeID  int64   `json:"employee_id"`
	Name        string  `json:"employee_name"`
	Position    string  `json:"position"`
	TotalOrders int     `json:"total_orders"`
	TotalSales  float64 `json:"total_sales"`
}

type CategorySales struct {
	CategoryName string  `json:"category_name"`
	TotalSales   float64 `json:"total_sales"`
	OrderCount   int     `json:"order_count"`
}

type Summary struct {
	TotalCustomers         int64             `json:"total_customers"`
	TotalProducts          int64             `json:"total_products"`
	TotalOrders            int64             `json:"total_orders"`
	TotalRevenue           float64           `json:"total_revenue"`
	TotalRevenueFormatted  string            `json:"total_revenue_formatted"`
	RecentOrders           []RecentOrder     `json:"recent_orders"`
	LowStock               []LowStockProduct `json:"low_stock"`
	ActiveStatusCounts     map[string]int    `json:"active_status_counts"`
	TopEmployees           []EmployeeSales   `json:"top_employees"`
	CategorySalesLast30Day []CategorySales   `json:"category_sales_30d"`
}

// Summary gathers the dashboard figures in one round of queries.
func (r *Repo) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{ActiveStatusCounts: map[string]int{}}

	var revenueCents int64
	err := r.DB.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM customers),
		       (SELECT COUNT(*) FROM products),
		       (SELECT COUNT(*) FROM orders),
		       COALESCE((SELECT SUM(total_amount_cents) FROM orders WHERE order_status = 'completed'), 0)`).
		Scan(&s.TotalCustomers, &s.TotalProducts, &s.TotalOrders, &revenueCents)
	if err != nil {
		return nil, err
	}
	s.TotalRevenue = float64(revenueCents) / 100
	s.TotalRevenueFormatted = orders.FormatCents(revenueCents)

	rows, err := r.DB.Query(ctx, `
		SELECT o.order_id, c.first_name || ' ' || c.last_name, o.order_date,
		       o.total_amount_cents, o.order_status
		FROM orders o
		JOIN customers c ON o.customer_id = c.customer_id
		ORDER BY o.order_date DESC, o.order_id DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ro RecentOrder
		var cents int64
		if err := rows.Scan(&ro.OrderID, &ro.CustomerName, &ro.OrderDate, &cents, &ro.Status); err != nil {
			rows.Close()
			return nil, err
		}
		ro.TotalAmount = float64(cents) / 100
		s.RecentOrders = append(s.RecentOrders, ro)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT product_name, stock_quantity
		FROM products
		WHERE stock_quantity < 10
		ORDER BY stock_quantity ASC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var lp LowStockProduct
		if err := rows.Scan(&lp.Name, &lp.Stock); err != nil {
			rows.Close()
			return nil, err
		}
		s.LowStock = append(s.LowStock, lp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT order_status, COUNT(*)
		FROM orders
		WHERE order_status IN ('pending', 'processing', 'shipped')
		GROUP BY order_status`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, err
		}
		s.ActiveStatusCounts[status] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT e.employee_id, e.first_name || ' ' || e.last_name, e.position,
		       COUNT(o.order_id), COALESCE(SUM(o.total_amount_cents), 0)
		FROM employees e
		JOIN orders o ON e.employee_id = o.employee_id AND o.order_status = 'completed'
		GROUP BY e.employee_id, e.first_name, e.last_name, e.position
		ORDER BY SUM(o.total_amount_cents) DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var es EmployeeSales
		var cents int64
		if err := rows.Scan(&es.EmployeeID, &es.Name, &es.Position, &es.TotalOrders, &cents); err != nil {
			rows.Close()
			return nil, err
		}
		es.TotalSales = float64(cents) / 100
		s.TopEmployees = append(s.TopEmployees, es)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT c.category_name,
		       SUM(od.quantity * od.unit_price_cents),
		       COUNT(DISTINCT o.order_id)
		FROM categories c
		JOIN products p ON c.category_id = p.category_id
		JOIN order_details od ON p.product_id = od.product_id
		JOIN orders o ON od.order_id = o.order_id
		WHERE o.order_status = 'completed'
		  AND o.order_date >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY c.category_id, c.category_name
		HAVING SUM(od.quantity * od.unit_price_cents) > 0
		ORDER BY SUM(od.quantity * od.unit_price_cents) DESC`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var cs CategorySales
		var cents int64
		if err := rows.Scan(&cs.CategoryName, &cents, &cs.OrderCount); err != nil {
			rows.Close()
			return nil, err
		}
		cs.TotalSales = float64(cents) / 100
		s.CategorySalesLast30Day = append(s.CategorySalesLast30Day, cs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return s, nil
}
