package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gemtrade/config"
	"gemtrade/utils"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore implements DocumentStore using Google Cloud Storage. The locator
// is the object path within the bucket.
type GCSStore struct {
	client         *storage.Client
	bucketName     string
	serviceAccount *config.ServiceAccount
}

// NewGCSStore creates a DocumentStore backed by a Cloud Storage bucket.
func NewGCSStore(serviceAccountJSONPath, bucketName string) (*GCSStore, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// Load service account for signing URLs
	sa, err := utils.LoadServiceAccount(serviceAccountJSONPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account for signing URLs: %w", err)
	}

	return &GCSStore{
		client:         client,
		bucketName:     bucketName,
		serviceAccount: sa,
	}, nil
}

// Put writes the object under the given key with its content type and
// returns the object path. Identity documents stay private; access goes
// through signed URLs only.
func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ObjectAttrs.ContentType = contentType
	}

	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return key, nil
}

// Delete removes an object from the bucket.
func (s *GCSStore) Delete(ctx context.Context, locator string) error {
	obj := s.client.Bucket(s.bucketName).Object(locator)
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// DownloadURL returns a signed URL valid for the specified duration.
func (s *GCSStore) DownloadURL(ctx context.Context, locator string, expires time.Duration) (string, error) {
	url, err := storage.SignedURL(s.bucketName, locator, &storage.SignedURLOptions{
		GoogleAccessID: s.serviceAccount.ClientEmail,
		PrivateKey:     []byte(strings.ReplaceAll(s.serviceAccount.PrivateKey, `\n`, "\n")),
		Method:         "GET",
		Expires:        time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}
