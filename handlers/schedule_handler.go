package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gspevents/event-admin/schedule"
	"github.com/gspevents/event-admin/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) Rows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.scheduleService.Rows(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rows": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Rows []schedule.Row `json:"rows"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scheduleService.Save(r.Context(), input.Rows)
	if err != nil {
		if errors.Is(err, services.ErrNothingToSave) {
			response := jsonResponse{"message": "nothing to save", "updated": 0}
			if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
				serverErrorResponse(w, r, err)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) Text(w http.ResponseWriter, r *http.Request) {
	ref, err := refDate(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	text, err := h.scheduleService.Text(r.Context(), ref)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *ScheduleHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	ref, err := refDate(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ics, err := h.scheduleService.CalendarICS(r.Context(), ref)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))
}

func (h *ScheduleHandler) Announce(w http.ResponseWriter, r *http.Request) {
	ref, err := refDate(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	text, err := h.scheduleService.Announce(r.Context(), ref)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok", "text": text}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func refDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
