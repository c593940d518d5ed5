package handlers

import (
	"net/http"

	"github.com/gspevents/event-admin/services"
)

type HostHandler struct {
	hostService services.HostService
}

func NewHostHandler(hostService services.HostService) *HostHandler {
	return &HostHandler{hostService: hostService}
}

func (h *HostHandler) List(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.hostService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"hosts": hosts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HostHandler) Search(w http.ResponseWriter, r *http.Request) {
	hosts, err := h.hostService.Search(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"hosts": hosts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	hostID, err := getIDFromURL(r, "hostID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	host, err := h.hostService.GetByID(r.Context(), hostID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"host": host}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.HostInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	host, err := h.hostService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"host": host}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HostHandler) Update(w http.ResponseWriter, r *http.Request) {
	hostID, err := getIDFromURL(r, "hostID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.HostInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	host, err := h.hostService.Update(r.Context(), hostID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"host": host}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hostID, err := getIDFromURL(r, "hostID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.hostService.Delete(r.Context(), hostID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
