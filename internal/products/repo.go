package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CharloYT/Timetable/internal/orders"
)

type Repo struct{ DB *pgxpool.Pool }

// Search runs the catalogue query plus an unlimited count of the same
// filter set.
func (r *Repo) Search(ctx context.Context, params SearchParams) (*Result, error) {
	p := params.Normalize()
	where, args := buildWhere(p)

	sql := fmt.Sprintf(`
		SELECT p.product_id, p.product_name, p.description, p.price_cents,
		       p.stock_quantity, p.category_id, c.category_name
		FROM products p
		JOIN categories c ON p.category_id = c.category_id
		%s
		ORDER BY %s %s
		LIMIT $%d`,
		where, sortColumns[p.SortBy], p.SortOrder, len(args)+1)

	rows, err := r.DB.Query(ctx, sql, append(args, p.Limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &Result{Products: []Product{}, QueryInfo: p}
	for rows.Next() {
		var pr Product
		var priceCents int64
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Description, &priceCents,
			&pr.Stock, &pr.CategoryID, &pr.CategoryName); err != nil {
			return nil, err
		}
		pr.Price = float64(priceCents) / 100
		pr.PriceFormatted = orders.FormatCents(priceCents)
		pr.StockStatus = StockStatus(pr.Stock)
		out.Products = append(out.Products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	countSQL := `
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON p.category_id = c.category_id` + where
	if err := r.DB.QueryRow(ctx, countSQL, args...).Scan(&out.TotalCount); err != nil {
		return nil, err
	}
	return out, nil
}
