package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gspevents/event-admin/storage"
)

type fakeUploader struct {
	lastKey         string
	lastContentType string
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, _ io.Reader) (*storage.UploadResult, error) {
	f.lastKey = key
	f.lastContentType = contentType
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(context.Context, string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func multipartUpload(t *testing.T, fields map[string]string, fileField, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	t.Run("event photo lands under the event key prefix", func(t *testing.T) {
		uploader := &fakeUploader{}
		handler := NewUploadHandler(uploader)

		body, contentType := multipartUpload(t, map[string]string{"event_id": "7"}, "photo", "night.JPG", "image/jpeg")
		req := httptest.NewRequest(http.MethodPost, "/generate-upload-url", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		handler.Upload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Regexp(t, `^events/7/photos/.+\.jpg$`, uploader.lastKey)
		assert.Equal(t, "image/jpeg", uploader.lastContentType)
		assert.Contains(t, rec.Body.String(), "https://cdn.example.com/"+uploader.lastKey)
	})

	t.Run("generic upload lands under uploads", func(t *testing.T) {
		uploader := &fakeUploader{}
		handler := NewUploadHandler(uploader)

		body, contentType := multipartUpload(t, nil, "file", "results.pdf", "application/pdf")
		req := httptest.NewRequest(http.MethodPost, "/generate-upload-url", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		handler.Upload(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Regexp(t, `^uploads/.+\.pdf$`, uploader.lastKey)
	})

	t.Run("missing file part is rejected", func(t *testing.T) {
		handler := NewUploadHandler(&fakeUploader{})

		body, contentType := multipartUpload(t, map[string]string{"event_id": "7"}, "other", "x.png", "image/png")
		req := httptest.NewRequest(http.MethodPost, "/generate-upload-url", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		handler.Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported content type is rejected", func(t *testing.T) {
		handler := NewUploadHandler(&fakeUploader{})

		body, contentType := multipartUpload(t, nil, "file", "notes.exe", "application/octet-stream")
		req := httptest.NewRequest(http.MethodPost, "/generate-upload-url", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		handler.Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unconfigured storage reports unavailable", func(t *testing.T) {
		handler := NewUploadHandler(nil)

		rec := httptest.NewRecorder()
		handler.Upload(rec, httptest.NewRequest(http.MethodPost, "/generate-upload-url", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
