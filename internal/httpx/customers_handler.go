package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CharloYT/Timetable/internal/customers"
)

type CustomerRegistrar interface {
	Register(ctx context.Context, req customers.Request, actorID int64) (*customers.Customer, error)
}

type CustomersHandler struct {
	Customers CustomerRegistrar
}

func (h *CustomersHandler) Register(r *chi.Mux) {
	r.Post("/customers", h.create)
}

func (h *CustomersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req customers.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "errors": []string{"invalid json"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Customers.Register(ctx, req, actorID(r))
	if err != nil {
		var vErr *customers.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false, "errors": vErr.Errors,
			})
		case errors.Is(err, customers.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false, "errors": []string{err.Error()},
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false, "errors": []string{err.Error()},
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Customer added successfully! Customer ID: %d", c.ID),
		"customer": c,
	})
}
