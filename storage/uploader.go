// Package storage abstracts object storage for event photo uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// PhotoKey builds a unique object key for an event photo, keeping the
// original file extension when it has one.
func PhotoKey(eventID int, filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	return fmt.Sprintf("events/%d/photos/%s%s", eventID, uuid.NewString(), ext)
}

// UploadKey builds a unique object key for an arbitrary console upload.
func UploadKey(filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	return fmt.Sprintf("uploads/%s%s", uuid.NewString(), ext)
}
