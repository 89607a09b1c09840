package products

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p := SearchParams{}.Normalize()
	require.Equal(t, 20, p.Limit)
	require.Equal(t, "product_name", p.SortBy)
	require.Equal(t, "ASC", p.SortOrder)

	p = SearchParams{Limit: 500, SortBy: "price; DROP TABLE products", SortOrder: "desc"}.Normalize()
	require.Equal(t, 100, p.Limit)
	require.Equal(t, "product_name", p.SortBy)
	require.Equal(t, "DESC", p.SortOrder)

	p = SearchParams{Limit: 5, SortBy: "stock_quantity", SortOrder: "ASC"}.Normalize()
	require.Equal(t, 5, p.Limit)
	require.Equal(t, "stock_quantity", p.SortBy)
}

func TestStockStatus(t *testing.T) {
	require.Equal(t, "Out of Stock", StockStatus(0))
	require.Equal(t, "Low Stock", StockStatus(9))
	require.Equal(t, "Limited Stock", StockStatus(10))
	require.Equal(t, "Limited Stock", StockStatus(24))
	require.Equal(t, "In Stock", StockStatus(25))
}

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(SearchParams{})
	require.Empty(t, where)
	require.Empty(t, args)

	where, args = buildWhere(SearchParams{Query: "widget", CategoryID: 3, InStockOnly: true})
	require.Equal(t,
		" WHERE (p.product_name ILIKE $1 OR p.description ILIKE $1) AND p.category_id = $2 AND p.stock_quantity > 0",
		where)
	require.Equal(t, []any{"%widget%", int64(3)}, args)
}
