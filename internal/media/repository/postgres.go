package repository

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/media/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/remote"
)

const assetsTable = "media_assets"

var assetColumns = []string{
	"id", "folder", "file_name", "object_key", "url", "content_type", "size_bytes", "uploaded_by", "created_at",
}

type PGRepository struct {
	DB *remote.Client
}

func NewPGRepository(db *remote.Client) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.MediaAsset) error {
	return r.DB.From(assetsTable).Select(assetColumns...).Insert(ctx, a)
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.MediaAsset, error) {
	var a model.MediaAsset
	if err := r.DB.From(assetsTable).Eq("id", id).One(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MediaFilters) ([]model.MediaAsset, int, error) {
	filtered := func() *remote.Query {
		q := r.DB.From(assetsTable)
		if f.Folder != "" {
			q = q.Eq("folder", f.Folder)
		}
		return q
	}

	total, err := filtered().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	var assets []model.MediaAsset
	err = filtered().Order("created_at", false).Order("id", true).Page(f.Page, f.PageSize).Many(ctx, &assets)
	return assets, total, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	n, err := r.DB.From(assetsTable).Eq("id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
