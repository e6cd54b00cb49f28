package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// BillImageStore archives rendered bill images. The archive copy is a
// convenience for the accounts area; the authoritative upload goes to the
// hospital backend.
type BillImageStore interface {
	UploadBillImage(ctx context.Context, image []byte, recordID string) (string, error)
	DeleteBillImage(ctx context.Context, publicID string) error
}

// CloudinaryStore implements BillImageStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore wraps an initialized Cloudinary client.
func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

// UploadBillImage stores the PNG under the bills folder and returns the
// permanent public ID.
func (s *CloudinaryStore) UploadBillImage(ctx context.Context, image []byte, recordID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder:   "bills",
		PublicID: recordID,
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload bill image: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("storage: no public ID returned")
	}
	return result.PublicID, nil
}

// DeleteBillImage removes an archived image by public ID.
func (s *CloudinaryStore) DeleteBillImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete bill image: %w", err)
	}
	return nil
}
