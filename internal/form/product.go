package form

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/editor"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/forgeline/equipment-cms/internal/product"
	"github.com/forgeline/equipment-cms/internal/product/dto"
	"golang.org/x/sync/errgroup"
)

type ProductService interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	SaveProduct(ctx context.Context, input *dto.SaveProductInput) (*model.Product, error)
}

type ComponentCatalog interface {
	ListActive(ctx context.Context) ([]model.Component, error)
}

// ProductForm edits one product with its specification, media and component editors.
type ProductForm struct {
	lifecycle

	products ProductService
	catalog  ComponentCatalog
	uploader editor.Uploader

	Product    model.Product
	Specs      *editor.SpecEditor
	Media      *editor.MediaList
	Components *editor.Assignments
}

// NewProductForm wires the editors. uploader is the media library and may be nil
// when only URL media are edited.
func NewProductForm(products ProductService, catalog ComponentCatalog, uploader editor.Uploader) *ProductForm {
	return &ProductForm{products: products, catalog: catalog, uploader: uploader}
}

// Load fetches the product (with media and links) and the active component
// catalog concurrently. An empty id starts a new product.
func (f *ProductForm) Load(ctx context.Context, id string) error {
	f.state = Loading

	var (
		p       *model.Product
		catalog []model.Component
	)
	g, gctx := errgroup.WithContext(ctx)
	if id != "" {
		g.Go(func() error {
			var err error
			p, err = f.products.GetProduct(gctx, id)
			return err
		})
	}
	g.Go(func() error {
		var err error
		catalog, err = f.catalog.ListActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return f.loaded(err, f.loadedAt)
	}

	if p == nil {
		p = &model.Product{
			Currency:  "EUR",
			PriceMode: model.PriceModeOnRequest,
			Status:    model.StatusDraft,
		}
	}
	f.Product = *p
	f.Specs = editor.NewSpecEditor(p.Specifications, func(m model.SpecMap) { f.Product.Specifications = m })
	f.Media = editor.NewMediaList(p.Media, f.uploader, mediaFolder(p.Slug))
	f.Components = editor.NewAssignments(p.ID, p.Components, catalog)
	return f.loaded(nil, p.UpdatedAt)
}

func mediaFolder(productSlug string) string {
	if productSlug == "" {
		return "products"
	}
	return "products/" + productSlug
}

// Submit validates locally and, when that passes, saves the product with its
// media and component links in display order. A validation failure never
// reaches the service.
func (f *ProductForm) Submit(ctx context.Context) (*model.Product, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}

	p := f.Product
	p.Specifications = f.Specs.Map()
	if err := product.Prepare(&p); err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Product.Slug = p.Slug

	saved, err := f.products.SaveProduct(ctx, &dto.SaveProductInput{
		Product:    p,
		Media:      f.Media.Items(),
		Components: f.Components.Items(),
		LoadedAt:   f.loadedAt,
	})
	if err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Product = *saved
	return saved, f.finish(nil, saved.UpdatedAt)
}
