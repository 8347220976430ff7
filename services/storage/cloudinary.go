package storage

import (
	"context"
	"fmt"
	"io"

	"staybook/config"
	"staybook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewFromConfig returns a Cloudinary-backed service, or a disabled one when
// credentials are missing.
func NewFromConfig(cfg config.Config) (StorageService, error) {
	if !cfg.CloudinaryEnabled() {
		utils.GetLogger().Warn("Cloudinary credentials not set; image uploads disabled")
		return DisabledStorageService{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld}, nil
}

func (s *CloudinaryStorageService) Enabled() bool { return true }

func (s *CloudinaryStorageService) Upload(ctx context.Context, file io.Reader, kind ImageKind) (*Asset, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         kind.Folder,
		Transformation: kind.Transformation(),
		ResourceType:   "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return &Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (s *CloudinaryStorageService) Delete(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy failed: %s", resp.Error.Message)
	}
	if resp.Result != "ok" {
		utils.GetLogger().Warn("Cloudinary destroy returned unexpected result",
			zap.String("publicId", publicID), zap.String("result", resp.Result))
	}
	return nil
}

// DisabledStorageService rejects uploads; deletions are no-ops.
type DisabledStorageService struct{}

func (DisabledStorageService) Enabled() bool { return false }

func (DisabledStorageService) Upload(context.Context, io.Reader, ImageKind) (*Asset, error) {
	return nil, ErrStorageDisabled
}

func (DisabledStorageService) Delete(context.Context, string) error { return nil }
