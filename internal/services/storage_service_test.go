package services

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"testing"

	"school-backend/internal/apperr"
	appconfig "school-backend/internal/config"
)

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &appconfig.Config{}
	cfg.Storage.UploadDir = t.TempDir()

	svc, err := NewStorageService(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}
	return svc
}

func TestSaveAndOpenPhoto(t *testing.T) {
	svc := newLocalStorage(t)
	ctx := context.Background()
	photo := []byte("not-really-a-png")

	location, err := svc.SavePhoto(ctx, "S001", "image/png", int64(len(photo)), bytes.NewReader(photo))
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}
	if !strings.Contains(location, "S001_") || !strings.HasSuffix(location, ".png") {
		t.Errorf("location = %q, want S001_<id>.png", location)
	}

	body, contentType, err := svc.OpenPhoto(ctx, location)
	if err != nil {
		t.Fatalf("OpenPhoto: %v", err)
	}
	defer body.Close()

	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}
	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if !bytes.Equal(got, photo) {
		t.Errorf("stored bytes differ: %q", got)
	}

	if err := svc.DeletePhoto(ctx, location); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	if _, _, err := svc.OpenPhoto(ctx, location); !apperr.IsNotFound(err) {
		t.Errorf("after delete err = %v, want NotFound", err)
	}
}

func TestOpenPhotoNoLocation(t *testing.T) {
	svc := newLocalStorage(t)

	if _, _, err := svc.OpenPhoto(context.Background(), ""); !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestSavePhotoRejectsBadInput(t *testing.T) {
	svc := newLocalStorage(t)
	ctx := context.Background()

	_, err := svc.SavePhoto(ctx, "S001", "image/gif", 10, strings.NewReader("gif"))
	if apperr.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("gif err = %v, want BadRequest", err)
	}

	_, err = svc.SavePhoto(ctx, "S001", "image/png", maxPhotoSize+1, strings.NewReader("big"))
	if apperr.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("oversize err = %v, want BadRequest", err)
	}
}
