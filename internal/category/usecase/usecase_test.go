package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/forgeline/equipment-cms/internal/category/dto"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items    map[string]*model.Category
	children map[string]int
	writes   int
}

func (r *fakeRepo) Create(ctx context.Context, c *model.Category) error {
	r.writes++
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, c *model.Category, loadedAt time.Time) error {
	r.writes++
	if _, ok := r.items[c.ID]; !ok {
		return model.ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return nil, model.ErrNotFound
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	var out []model.Category
	for _, id := range []string{"root", "child", "other"} {
		if c, ok := r.items[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountChildren(ctx context.Context, id string) (int, error) {
	return r.children[id], nil
}

func (r *fakeRepo) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, c := range r.items {
		if c.Slug == slug && c.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func strPtr(s string) *string { return &s }

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		items: map[string]*model.Category{
			"root":  {BaseModel: model.BaseModel{ID: "root"}, Name: "Mixers", Slug: "mixers"},
			"child": {BaseModel: model.BaseModel{ID: "child"}, Name: "Planetary", Slug: "planetary", ParentID: strPtr("root")},
		},
		children: map[string]int{"root": 1},
	}
}

func TestSaveCategory_CreateUnderRoot(t *testing.T) {
	repo := newRepo()
	uc := NewCategoryUseCase(repo, nil, logger.NewNop())

	c, err := uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{Name: "Spiral Mixers", ParentID: strPtr("root"), IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "spiral-mixers", c.Slug)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 1, repo.writes)
}

func TestSaveCategory_SingleLevelNesting(t *testing.T) {
	repo := newRepo()
	uc := NewCategoryUseCase(repo, nil, logger.NewNop())

	_, err := uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{Name: "Too Deep", ParentID: strPtr("child")},
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "parent must be a top-level category", verr.Fields["parent_id"])

	_, err = uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{BaseModel: model.BaseModel{ID: "root"}, Name: "Mixers", Slug: "mixers", ParentID: strPtr("other-root")},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent_id")
	assert.Zero(t, repo.writes)
}

func TestSaveCategory_SelfParentAndDuplicateSlug(t *testing.T) {
	repo := newRepo()
	uc := NewCategoryUseCase(repo, nil, logger.NewNop())

	_, err := uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{BaseModel: model.BaseModel{ID: "child"}, Name: "Planetary", ParentID: strPtr("child")},
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "a category cannot be its own parent", verr.Fields["parent_id"])

	_, err = uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{Name: "Mixers"},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestListCategories_Tree(t *testing.T) {
	uc := NewCategoryUseCase(newRepo(), nil, logger.NewNop())

	tree, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{Tree: true})
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "child", tree[0].Children[0].ID)
}

func TestCategoryWrites_InvalidateProductCache(t *testing.T) {
	repo := newRepo()
	products := &countingInvalidator{}
	uc := NewCategoryUseCase(repo, products, logger.NewNop())

	_, err := uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{Name: "Spiral Mixers", ParentID: strPtr("root")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, products.calls)

	require.NoError(t, uc.DeleteCategory(context.Background(), "child"))
	assert.Equal(t, 2, products.calls)

	// rejected writes leave the cache alone
	_, err = uc.SaveCategory(context.Background(), &dto.SaveCategoryInput{
		Category: model.Category{Name: "Too Deep", ParentID: strPtr("child")},
	})
	require.Error(t, err)
	assert.Equal(t, 2, products.calls)
}
