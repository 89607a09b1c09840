package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/CharloYT/Timetable/internal/orders"
	"github.com/CharloYT/Timetable/internal/redisx"
)

// OrderService is the intake flow the handler drives.
type OrderService interface {
	PlaceOrder(ctx context.Context, req orders.Request, actorID int64) (*orders.Confirmation, error)
}

// OrderStatusStore covers the status lookups and transitions the handler
// needs outside the intake flow.
type OrderStatusStore interface {
	OrderStatus(ctx context.Context, orderID int64) (orders.Status, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, to orders.Status) error
}

type OrdersHandler struct {
	Service  OrderService
	Statuses OrderStatusStore
	Redis    *redis.Client
}

// OrderResponse is the fixed envelope of the order intake API.
type OrderResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	OrderID      *int64               `json:"order_id"`
	OrderDetails *orders.Confirmation `json:"order_details"`
	Errors       []string             `json:"errors"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("Invalid JSON data: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conf, err := h.Service.PlaceOrder(ctx, req, actorID(r))
	if err != nil {
		writeJSON(w, intakeStatus(err), failure(err.Error()))
		return
	}

	// warm the status cache so the GET right after creation skips the DB
	if h.Redis != nil {
		statusKey := fmt.Sprintf(redisx.KeyOrderStatus, conf.OrderID)
		_ = h.Redis.Set(ctx, statusKey, `{"status":"pending"}`, redisx.TTLStatusCache).Err()
	}

	writeJSON(w, http.StatusCreated, OrderResponse{
		Success:      true,
		Message:      "Order created successfully",
		OrderID:      &conf.OrderID,
		OrderDetails: conf,
		Errors:       []string{},
	})
}

func failure(msg string) OrderResponse {
	return OrderResponse{Message: msg, Errors: []string{msg}}
}

// intakeStatus maps the intake error taxonomy onto HTTP codes. Anything
// from the mutation phase is a plain server error.
func intakeStatus(err error) int {
	var (
		vErr  *orders.ValidationError
		nfErr *orders.NotFoundError
		isErr *orders.InsufficientStockError
	)
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &isErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	status, err := h.Statuses.OrderStatus(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	body, _ := json.Marshal(map[string]any{"status": status})
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var body struct {
		Status orders.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !orders.ValidStatus(body.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.Statuses.UpdateOrderStatus(ctx, orderID, body.Status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.Is(err, orders.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// drop the cached status so readers see the transition
	if h.Redis != nil {
		_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, orderID)).Err()
	}
	writeJSON(w, http.StatusOK, map[string]any{"order_id": orderID, "status": body.Status})
}
