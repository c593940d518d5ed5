package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gspevents/event-admin/services"
	"github.com/gspevents/event-admin/storage"
)

const maxUploadBytes = 32 << 20

type UploadHandler struct {
	uploader storage.FileUploader
}

func NewUploadHandler(uploader storage.FileUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload accepts a multipart form upload under the "file" or "photo" field,
// stores it in object storage and returns the public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, services.ErrUploadEmpty)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("photo")
	}
	if err != nil {
		badRequestResponse(w, r, services.ErrUploadEmpty)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !isAllowedUploadType(contentType, header.Filename) {
		badRequestResponse(w, r, services.ErrUploadTypeInvalid)
		return
	}

	// Photo uploads for a specific event carry an event_id form field and
	// land under that event's key prefix.
	key := storage.UploadKey(header.Filename)
	if eventID, err := strconv.Atoi(r.FormValue("event_id")); err == nil && eventID > 0 {
		key = storage.PhotoKey(eventID, header.Filename)
	}

	result, err := h.uploader.Upload(r.Context(), key, contentType, file)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{"status": "ok", "publicUrl": result.Location}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func isAllowedUploadType(contentType, filename string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	if strings.HasPrefix(contentType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
