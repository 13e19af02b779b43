package config

import (
	"context"
	"fmt"
	"log"

	"rental-backend/storage"
)

// NewObjectStore builds the store uploaded images are written to.
func NewObjectStore(ctx context.Context, s UploadSettings) (storage.ObjectStore, error) {
	switch s.Driver {
	case "", "local":
		log.Printf("✅ Uploads stored on disk in %s, served at %s", s.Dir, s.BaseURL)
		return storage.NewLocalStore(s.Dir, s.BaseURL), nil
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          s.S3Bucket,
			Region:          s.S3Region,
			Endpoint:        s.S3Endpoint,
			AccessKeyID:     s.S3AccessKeyID,
			SecretAccessKey: s.S3SecretAccessKey,
			PublicBaseURL:   s.S3PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Uploads stored in bucket %s", s.S3Bucket)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_DRIVER %q", s.Driver)
	}
}
