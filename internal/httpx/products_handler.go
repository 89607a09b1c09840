package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CharloYT/Timetable/internal/products"
)

type ProductSearcher interface {
	Search(ctx context.Context, params products.SearchParams) (*products.Result, error)
}

type ProductsHandler struct {
	Products ProductSearcher
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.search)
}

func (h *ProductsHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	categoryID, _ := strconv.ParseInt(q.Get("category_id"), 10, 64)
	limit, _ := strconv.Atoi(q.Get("limit"))

	params := products.SearchParams{
		Query:       q.Get("q"),
		CategoryID:  categoryID,
		Limit:       limit,
		InStockOnly: q.Get("in_stock") == "1",
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	result, err := h.Products.Search(ctx, params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "Database error: " + err.Error(),
			"data": []any{}, "total_count": 0,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Products retrieved successfully",
		"data":        result.Products,
		"total_count": result.TotalCount,
		"query_info":  result.QueryInfo,
	})
}
