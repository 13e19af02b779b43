package services

import (
	"context"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"strings"

	"rental-backend/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadSize is the per-file limit for listing images.
const MaxUploadSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadedFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// UploadService validates listing images and hands them to an ObjectStore.
type UploadService struct {
	Store   storage.ObjectStore
	MaxSize int64
	Prefix  string
}

func NewUploadService(store storage.ObjectStore) *UploadService {
	return &UploadService{Store: store, MaxSize: MaxUploadSize, Prefix: "properties"}
}

// contentType returns the declared media type of the part, sniffing the
// content when the client sent none.
func contentType(fh *multipart.FileHeader) (string, error) {
	declared := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if declared != "" && declared != "application/octet-stream" {
		mt, _, err := mime.ParseMediaType(declared)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, declared)
		}
		return strings.ToLower(mt), nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", fh.Filename, err)
	}
	mt, _, _ := mime.ParseMediaType(detected.String())
	return strings.ToLower(mt), nil
}

// Validate checks the type and size of one file and returns its media type.
func (s *UploadService) Validate(fh *multipart.FileHeader) (string, error) {
	ct, err := contentType(fh)
	if err != nil {
		return "", err
	}
	if _, ok := allowedImageTypes[ct]; !ok {
		return "", fmt.Errorf("%w: %s. Only JPEG, PNG, and WebP are allowed", ErrUnsupportedFileType, ct)
	}
	if fh.Size > s.MaxSize {
		return "", fmt.Errorf("%w: %s exceeds %dMB", ErrFileTooLarge, fh.Filename, s.MaxSize/(1024*1024))
	}
	return ct, nil
}

// Save validates every file before storing any of them.
func (s *UploadService) Save(ctx context.Context, files []*multipart.FileHeader) ([]UploadedFile, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	types := make([]string, len(files))
	for i, fh := range files {
		ct, err := s.Validate(fh)
		if err != nil {
			return nil, err
		}
		types[i] = ct
	}

	out := make([]UploadedFile, 0, len(files))
	for i, fh := range files {
		key := fmt.Sprintf("%s/%s%s", s.Prefix, uuid.NewString(), allowedImageTypes[types[i]])

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		url, err := s.Store.Put(ctx, key, f, types[i])
		f.Close()
		if err != nil {
			log.Printf("❌ UploadService.Save store error key=%s: %v", key, err)
			return nil, fmt.Errorf("store %s: %w", fh.Filename, err)
		}

		out = append(out, UploadedFile{Name: fh.Filename, URL: url, Size: fh.Size, Type: types[i]})
	}

	log.Printf("⬅️ UploadService.Save ok: %d files", len(out))
	return out, nil
}
