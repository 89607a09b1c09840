package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CharloYT/Timetable/internal/reports"
)

type DashboardSource interface {
	Summary(ctx context.Context) (*reports.Summary, error)
}

type DashboardHandler struct {
	Reports DashboardSource
}

func (h *DashboardHandler) Register(r *chi.Mux) {
	r.Get("/dashboard", h.summary)
}

func (h *DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := h.Reports.Summary(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}
