package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

var (
	ErrStorageDisabled = errors.New("image uploads are not configured on this server")
	ErrNotAnImage      = errors.New("not an image! Please upload only images")
	ErrImageTooLarge   = errors.New("image exceeds the 10MB limit")
	ErrTooManyImages   = errors.New("a listing may have at most 5 images")
)

const (
	MaxImageBytes    = 10 << 20
	MaxListingImages = 5
)

// ImageKind describes where an image lives and how it is cropped.
type ImageKind struct {
	Folder string
	Width  int
	Height int
}

var (
	ListingImage = ImageKind{Folder: "staybook/listings", Width: 2000, Height: 1333}
	UserPhoto    = ImageKind{Folder: "staybook/users", Width: 500, Height: 500}
)

// Transformation returns the crop/format transformation applied on upload.
func (k ImageKind) Transformation() string {
	return fmt.Sprintf("c_fill,g_auto,w_%d,h_%d,q_90,f_jpg", k.Width, k.Height)
}

// Asset is a stored image.
type Asset struct {
	URL      string
	PublicID string
}

// StorageService defines the interface for image storage operations.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, kind ImageKind) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
	Enabled() bool
}

// ValidateImage checks the declared content type and size of an upload.
func ValidateImage(fh *multipart.FileHeader) error {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return ErrNotAnImage
	}
	if fh.Size > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

// UploadFiles validates and uploads each file, returning assets in order.
// Already uploaded assets are deleted when a later upload fails.
func UploadFiles(ctx context.Context, svc StorageService, files []*multipart.FileHeader, kind ImageKind) ([]Asset, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if !svc.Enabled() {
		return nil, ErrStorageDisabled
	}
	for _, fh := range files {
		if err := ValidateImage(fh); err != nil {
			return nil, err
		}
	}

	assets := make([]Asset, 0, len(files))
	for _, fh := range files {
		asset, err := uploadOne(ctx, svc, fh, kind)
		if err != nil {
			for _, a := range assets {
				_ = svc.Delete(ctx, a.PublicID)
			}
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

func uploadOne(ctx context.Context, svc StorageService, fh *multipart.FileHeader, kind ImageKind) (*Asset, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return svc.Upload(ctx, f, kind)
}
