package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/media"
	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/metrics"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/objectstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultFolder = "media"

type mediaUseCase struct {
	repo   media.Repository
	store  objectstore.Store
	logger logger.ZapLogger
}

func NewMediaUseCase(repo media.Repository, store objectstore.Store, log logger.ZapLogger) media.UseCase {
	return &mediaUseCase{
		repo:   repo,
		store:  store,
		logger: log,
	}
}

// Upload stores the file and indexes it. If indexing fails the stored object is
// removed again.
func (uc *mediaUseCase) Upload(ctx context.Context, input *dto.UploadInput) (*model.MediaAsset, error) {
	folder := strings.TrimSpace(input.Folder)
	if folder == "" {
		folder = DefaultFolder
	}
	if strings.TrimSpace(input.FileName) == "" {
		v := model.NewValidationError()
		v.Add("file", "file is required")
		return nil, v
	}

	obj, err := uc.store.Upload(ctx, folder, input.FileName, input.ContentType, input.Body, input.Size)
	if err != nil {
		if errors.Is(err, objectstore.ErrInvalidFolder) {
			v := model.NewValidationError()
			v.Add("folder", "folder is not allowed")
			return nil, v
		}
		return nil, err
	}

	asset := &model.MediaAsset{
		ID:          uuid.New().String(),
		Folder:      folder,
		FileName:    input.FileName,
		ObjectKey:   obj.Key,
		URL:         obj.URL,
		ContentType: obj.ContentType,
		SizeBytes:   obj.Size,
		UploadedBy:  input.UploadedBy,
		CreatedAt:   model.Now(),
	}
	if err := uc.repo.Create(ctx, asset); err != nil {
		if derr := uc.store.Delete(ctx, obj.Key); derr != nil {
			uc.logger.Error("failed to remove orphaned object", zap.String("key", obj.Key), zap.Error(derr))
		}
		return nil, err
	}

	metrics.RecordUpload(rootFolder(folder), obj.Size)
	uc.logger.Info("media uploaded", zap.String("key", obj.Key), zap.Int64("size", obj.Size))
	return asset, nil
}

func rootFolder(folder string) string {
	root, _, _ := strings.Cut(strings.Trim(folder, "/"), "/")
	return root
}

func (uc *mediaUseCase) ListAssets(ctx context.Context, filters *dto.MediaFilters) ([]model.MediaAsset, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// DeleteAsset drops the index row, then the stored object. A failed object delete
// is only logged; the row is already gone.
func (uc *mediaUseCase) DeleteAsset(ctx context.Context, id string) error {
	asset, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, asset.ObjectKey); err != nil {
		uc.logger.Warn("failed to delete stored object", zap.String("key", asset.ObjectKey), zap.Error(err))
	}
	return nil
}
