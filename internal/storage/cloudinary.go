package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"io.globetrek.app/internal/workflow"
)

// MediaStore uploads journal photos to Cloudinary and returns their
// public URLs. It satisfies workflow.MediaStore.
type MediaStore struct {
	cld *cloudinary.Cloudinary
}

// NewMediaStore initializes the Cloudinary client from the
// CLOUDINARY_CLOUD_NAME / CLOUDINARY_API_KEY / CLOUDINARY_API_SECRET
// environment variables.
func NewMediaStore() (*MediaStore, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration (CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET)")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &MediaStore{cld: cld}, nil
}

// Upload stores one file under the given path and returns its secure URL.
// The path doubles as the Cloudinary public ID, so the user/timestamp
// namespacing chosen by the workflow carries through to the stored asset.
func (s *MediaStore) Upload(ctx context.Context, path string, file workflow.File) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file.Data, uploader.UploadParams{
		PublicID:     path,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to Cloudinary: %w", file.Name, err)
	}

	return result.SecureURL, nil
}
