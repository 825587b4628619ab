package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/repository"
)

// AssetService stores uploaded images and returns their public URL, which a
// user can then submit as a post's image_url.
type AssetService interface {
	UploadImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaAsset, error)
}

type assetService struct {
	ma repository.MediaAssetRepository
	r2 R2Service
}

func NewAssetService(ma repository.MediaAssetRepository, r2 R2Service) AssetService {
	return &assetService{
		ma: ma,
		r2: r2,
	}
}

func (s *assetService) UploadImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.MediaAsset, error) {
	if file == nil {
		err := errors.New("no file provided")
		slog.Info(err.Error())
		return nil, err
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	allowedTypes := map[string]struct{}{
		"jpeg": {}, "jpg": {}, "png": {},
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, errors.New("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return nil, fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if err := s.r2.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return nil, fmt.Errorf("error uploading file: %w", err)
	}

	asset := &models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: fileType.MIME.Value,
		FileSize: int64(len(fileBytes)),
		FileURL:  s.r2.PublicURL(key),
	}

	assetID, err := s.ma.Create(ctx, nil, asset)
	if err != nil {
		return nil, err
	}
	asset.ID = assetID

	return asset, nil
}
