package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gspevents/event-admin/bulkcsv"
	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.EventFilter{
		Query:    r.URL.Query().Get("q"),
		ShowType: r.URL.Query().Get("show_type"),
		Status:   r.URL.Query().Get("status"),
		Limit:    queryInt(r, "limit"),
	}
	if start := r.URL.Query().Get("start"); start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		filter.Start = &parsed
	}
	if end := r.URL.Query().Get("end"); end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		filter.End = &parsed
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetByID(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.EventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.Update(r.Context(), eventID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.Delete(r.Context(), eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Validate(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input := struct {
		IsValidated bool `json:"is_validated"`
	}{IsValidated: true}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	event, err := h.eventService.SetValidated(r.Context(), eventID, input.IsValidated)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) BulkUploadSummary(w http.ResponseWriter, r *http.Request) {
	input := struct {
		VenueID int                        `json:"venue_id"`
		Events  []bulkcsv.EventRow         `json:"events"`
		Options services.BulkUploadOptions `json:"options"`
	}{Options: services.DefaultBulkUploadOptions()}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.VenueID <= 0 {
		badRequestResponse(w, r, services.ErrVenueRequired)
		return
	}

	summary, err := h.eventService.BulkUploadSummary(r.Context(), input.VenueID, input.Events, input.Options)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok", "summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) BulkUploadCSV(w http.ResponseWriter, r *http.Request) {
	venueID := queryInt(r, "venue_id")
	if venueID <= 0 {
		badRequestResponse(w, r, services.ErrVenueRequired)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.eventService.BulkUploadCSV(r.Context(), venueID, string(body), services.DefaultBulkUploadOptions())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok", "summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) BulkUploadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bulk-upload-template.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(bulkcsv.TemplateCSV))
}

func (h *EventHandler) AddPhotoURL(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.AddPhotoURL(r.Context(), eventID, input.URL)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) DeletePhotoURL(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.DeletePhotoURL(r.Context(), eventID, input.URL); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
