package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements DocumentStore using Cloudinary. The locator is
// the asset's public ID.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a DocumentStore backed by Cloudinary.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStore: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Put uploads the object under the given key and returns its public ID.
func (s *CloudinaryStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	uploadParams := uploader.UploadParams{
		PublicID: key,
		Folder:   s.folder,
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploadParams)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to upload object: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryStore: no public ID returned")
	}
	return result.PublicID, nil
}

// Delete removes an object given its public ID.
func (s *CloudinaryStore) Delete(ctx context.Context, locator string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: locator})
	if err != nil {
		return fmt.Errorf("CloudinaryStore: failed to delete object: %w", err)
	}
	return nil
}

// DownloadURL constructs the delivery URL for an object.
func (s *CloudinaryStore) DownloadURL(ctx context.Context, locator string, expires time.Duration) (string, error) {
	img, err := s.cld.Image(locator)
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to get asset: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryStore: failed to get URL string: %w", err)
	}
	return url, nil
}
