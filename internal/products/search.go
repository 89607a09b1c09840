package products

import (
	"fmt"
	"strings"
)

type SearchParams struct {
	Query       string
	CategoryID  int64
	Limit       int
	InStockOnly bool
	SortBy      string
	SortOrder   string
}

type Product struct {
	ID             int64   `json:"product_id"`
	Name           string  `json:"product_name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
	Stock          int     `json:"stock_quantity"`
	CategoryID     int64   `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	StockStatus    string  `json:"stock_status"`
}

type Result struct {
	Products   []Product    `json:"data"`
	TotalCount int          `json:"total_count"`
	QueryInfo  SearchParams `json:"query_info"`
}

// sortColumns whitelists what callers may order by.
var sortColumns = map[string]string{
	"product_name":   "p.product_name",
	"price":          "p.price_cents",
	"stock_quantity": "p.stock_quantity",
	"category_name":  "c.category_name",
}

// Normalize clamps and defaults the parameters the way the API documents
// them: limit 1..100 defaulting to 20, whitelisted sort column, ASC/DESC.
func (p SearchParams) Normalize() SearchParams {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "product_name"
	}
	if strings.EqualFold(p.SortOrder, "DESC") {
		p.SortOrder = "DESC"
	} else {
		p.SortOrder = "ASC"
	}
	return p
}

// StockStatus labels a stock level for display.
func StockStatus(quantity int) string {
	switch {
	case quantity == 0:
		return "Out of Stock"
	case quantity < 10:
		return "Low Stock"
	case quantity < 25:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}

// buildWhere assembles the filter conditions with bound parameters only.
// Returns the WHERE fragment (possibly empty) and its arguments.
func buildWhere(p SearchParams) (string, []any) {
	var conds []string
	var args []any
	if p.Query != "" {
		args = append(args, "%"+p.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.product_name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	if p.CategoryID > 0 {
		args = append(args, p.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if p.InStockOnly {
		conds = append(conds, "p.stock_quantity > 0")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
