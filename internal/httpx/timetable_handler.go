package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CharloYT/Timetable/internal/timetable"
)

type TimetableHandler struct {
	Repo *timetable.Repo
}

func (h *TimetableHandler) Register(r *chi.Mux) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.listDepartments)
		r.Post("/", h.createDepartment)
		r.Delete("/{id}", h.deleteDepartment)
	})
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.listCourses)
		r.Post("/", h.createCourse)
		r.Delete("/{id}", h.deleteCourse)
	})
	r.Route("/lecturers", func(r chi.Router) {
		r.Get("/", h.listLecturers)
		r.Post("/", h.createLecturer)
		r.Delete("/{id}", h.deleteLecturer)
	})
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.listRooms)
		r.Post("/", h.createRoom)
		r.Delete("/{id}", h.deleteRoom)
	})
	r.Route("/timeslots", func(r chi.Router) {
		r.Get("/", h.listTimeslots)
		r.Post("/", h.createTimeslot)
		r.Delete("/{id}", h.deleteTimeslot)
	})
	r.Route("/allocations", func(r chi.Router) {
		r.Get("/", h.listAllocations)
		r.Post("/", h.createAllocation)
		r.Delete("/{id}", h.deleteAllocation)
	})
	r.Get("/timetable", h.weeklyView)
	r.Get("/reports/lecturer-load", h.lecturerLoad)
}

func reqCtx(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

func list[T any](w http.ResponseWriter, r *http.Request, fn func(context.Context) ([]T, error)) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()
	out, err := fn(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		out = []T{}
	}
	writeJSON(w, http.StatusOK, out)
}

func create[T any](w http.ResponseWriter, r *http.Request, created string,
	fn func(context.Context, T) (int64, error)) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()
	id, err := fn(ctx, body)
	if err != nil {
		writeJSON(w, conflictStatus(err), map[string]string{"error": conflictMessage(err)})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": created})
}

func remove(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := reqCtx(r, 5*time.Second)
	defer cancel()
	if err := fn(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func conflictStatus(err error) int {
	switch {
	case errors.Is(err, timetable.ErrRoomBooked),
		errors.Is(err, timetable.ErrLecturerBooked),
		errors.Is(err, timetable.ErrDuplicateEntry):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, timetable.ErrRoomBooked):
		return "Error: Room is already booked for this time!"
	case errors.Is(err, timetable.ErrLecturerBooked):
		return "Error: Lecturer is already teaching at this time!"
	case errors.Is(err, timetable.ErrDuplicateEntry):
		return "Error: Duplicate entry found."
	default:
		return err.Error()
	}
}

func (h *TimetableHandler) listDepartments(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListDepartments)
}

func (h *TimetableHandler) createDepartment(w http.ResponseWriter, r *http.Request) {
	create(w, r, "New department created successfully", h.Repo.CreateDepartment)
}

func (h *TimetableHandler) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteDepartment)
}

func (h *TimetableHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListCourses)
}

func (h *TimetableHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	create(w, r, "New course created successfully", h.Repo.CreateCourse)
}

func (h *TimetableHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteCourse)
}

func (h *TimetableHandler) listLecturers(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListLecturers)
}

func (h *TimetableHandler) createLecturer(w http.ResponseWriter, r *http.Request) {
	create(w, r, "New lecturer added successfully", h.Repo.CreateLecturer)
}

func (h *TimetableHandler) deleteLecturer(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteLecturer)
}

func (h *TimetableHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListRooms)
}

func (h *TimetableHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	create(w, r, "New room added successfully", h.Repo.CreateRoom)
}

func (h *TimetableHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteRoom)
}

func (h *TimetableHandler) listTimeslots(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListTimeslots)
}

func (h *TimetableHandler) createTimeslot(w http.ResponseWriter, r *http.Request) {
	create(w, r, "New timeslot added successfully", h.Repo.CreateTimeslot)
}

func (h *TimetableHandler) deleteTimeslot(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteTimeslot)
}

func (h *TimetableHandler) listAllocations(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.ListAllocations)
}

func (h *TimetableHandler) createAllocation(w http.ResponseWriter, r *http.Request) {
	create(w, r, "Class scheduled successfully!", h.Repo.CreateAllocation)
}

func (h *TimetableHandler) deleteAllocation(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.Repo.DeleteAllocation)
}

func (h *TimetableHandler) weeklyView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := reqCtx(r, 3*time.Second)
	defer cancel()
	byDay, days, err := h.Repo.WeeklyView(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "schedule": byDay})
}

func (h *TimetableHandler) lecturerLoad(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.Repo.LecturerLoad)
}
