package form

import (
	"context"
	"testing"
	"time"

	catdto "github.com/forgeline/equipment-cms/internal/category/dto"
	compdto "github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/model"
	newsdto "github.com/forgeline/equipment-cms/internal/news/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponents struct {
	saved []compdto.SaveComponentInput
}

func (f *fakeComponents) GetComponent(ctx context.Context, id string) (*model.Component, error) {
	return &model.Component{BaseModel: model.BaseModel{ID: id}, Name: "Pump",
		Specifications: model.SpecMap{"flow": model.Number(12)}}, nil
}

func (f *fakeComponents) SaveComponent(ctx context.Context, in *compdto.SaveComponentInput) (*model.Component, error) {
	f.saved = append(f.saved, *in)
	c := in.Component
	return &c, nil
}

func TestComponentForm(t *testing.T) {
	svc := &fakeComponents{}
	f := NewComponentForm(svc)
	require.NoError(t, f.Load(context.Background(), "c1"))

	f.Specs.ChangeType("flow", model.KindText)
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, svc.saved, 1)
	assert.Equal(t, model.KindText, svc.saved[0].Component.Specifications["flow"].Kind())

	f.Component.Name = " "
	_, err = f.Submit(context.Background())
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, svc.saved, 1)
}

type fakeArticles struct {
	saved []newsdto.SaveNewsInput
}

func (f *fakeArticles) GetArticle(ctx context.Context, id string) (*model.NewsArticle, error) {
	return nil, model.ErrNotFound
}

func (f *fakeArticles) SaveArticle(ctx context.Context, in *newsdto.SaveNewsInput) (*model.NewsArticle, error) {
	f.saved = append(f.saved, *in)
	n := in.Article
	return &n, nil
}

func TestNewsForm_SlugFromTitle(t *testing.T) {
	svc := &fakeArticles{}
	f := NewNewsForm(svc)
	require.NoError(t, f.Load(context.Background(), ""))

	f.Article.Title = "Presse à Vis"
	f.Publish(true)
	n, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "presse-a-vis", n.Slug)
	assert.True(t, svc.saved[0].Article.IsPublished)
}

type fakeCategories struct {
	all   []model.Category
	saved []catdto.SaveCategoryInput
}

func (f *fakeCategories) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	for _, c := range f.all {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeCategories) ListCategories(ctx context.Context, filters *catdto.CategoryFilters) ([]model.Category, error) {
	return f.all, nil
}

func (f *fakeCategories) SaveCategory(ctx context.Context, in *catdto.SaveCategoryInput) (*model.Category, error) {
	f.saved = append(f.saved, *in)
	c := in.Category
	c.UpdatedAt = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	return &c, nil
}

func TestCategoryForm(t *testing.T) {
	machines := "machines"
	svc := &fakeCategories{all: []model.Category{
		{BaseModel: model.BaseModel{ID: "machines"}, Name: "Machines", Slug: "machines"},
		{BaseModel: model.BaseModel{ID: "mixers"}, Name: "Mixers", Slug: "mixers", ParentID: &machines},
		{BaseModel: model.BaseModel{ID: "lines"}, Name: "Lines", Slug: "lines"},
	}}
	f := NewCategoryForm(svc)
	require.NoError(t, f.Load(context.Background(), "lines"))

	var parents []string
	for _, p := range f.Parents {
		parents = append(parents, p.ID)
	}
	assert.Equal(t, []string{"machines"}, parents)

	f.Category.ParentID = model.StringPtr("lines")
	_, err := f.Submit(context.Background())
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent_id")
	assert.Empty(t, svc.saved)

	f.Category.ParentID = &machines
	saved, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.UpdatedAt, f.LoadedAt())
}
