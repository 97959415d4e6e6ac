// Package upload implements the image upload pipeline behind product
// forms: preview, crop, client-side compression, backend upload with
// progress, and rollback of replaced images once a save commits.
package upload

import (
	"context"
	"io"
)

// Asset identifies a stored image: the URL persisted on the entity and the
// backend-specific id needed to delete it later. PublicID is empty for
// assets referenced by pasted link, which the console does not own.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Backend stores and deletes images. Implementations are Cloudinary
// unsigned uploads and the in-house store API.
type Backend interface {
	// Upload stores the image and returns its asset. Reads the payload
	// exactly once; size is the payload length in bytes.
	Upload(ctx context.Context, filename string, payload io.Reader, size int64) (*Asset, error)

	// Delete removes a previously uploaded asset. Deleting an asset that
	// no longer exists is not an error.
	Delete(ctx context.Context, asset Asset) error
}
