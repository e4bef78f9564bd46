// Package seed loads catalog content from a YAML file through the admin forms,
// so imported records pass the same validation and save paths as manual edits.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/forgeline/equipment-cms/internal/editor"
	"github.com/forgeline/equipment-cms/internal/form"
	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Spec struct {
	Key   string `yaml:"key"`
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Parent      string `yaml:"parent"`
	SortOrder   int    `yaml:"sort_order"`
}

type Component struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Description  string `yaml:"description"`
	Manufacturer string `yaml:"manufacturer"`
	ModelNumber  string `yaml:"model_number"`
	Specs        []Spec `yaml:"specs"`
}

type Media struct {
	URL     string `yaml:"url"`
	AltText string `yaml:"alt"`
}

type Part struct {
	Component string `yaml:"component"`
	Quantity  int    `yaml:"quantity"`
	Optional  bool   `yaml:"optional"`
	Notes     string `yaml:"notes"`
}

type Product struct {
	Name             string   `yaml:"name"`
	ShortDescription string   `yaml:"short_description"`
	Description      string   `yaml:"description"`
	Type             string   `yaml:"type"`
	Category         string   `yaml:"category"`
	Price            *float64 `yaml:"price"`
	PriceMode        string   `yaml:"price_mode"`
	Status           string   `yaml:"status"`
	Featured         bool     `yaml:"featured"`
	Bestseller       bool     `yaml:"bestseller"`
	Tags             []string `yaml:"tags"`
	Specs            []Spec   `yaml:"specs"`
	Media            []Media  `yaml:"media"`
	Components       []Part   `yaml:"components"`
}

type Article struct {
	Title     string   `yaml:"title"`
	Type      string   `yaml:"type"`
	Excerpt   string   `yaml:"excerpt"`
	Content   string   `yaml:"content"`
	Tags      []string `yaml:"tags"`
	Published bool     `yaml:"published"`
}

type File struct {
	Categories []Category  `yaml:"categories"`
	Components []Component `yaml:"components"`
	Products   []Product   `yaml:"products"`
	News       []Article   `yaml:"news"`
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

type Services struct {
	Categories form.CategoryService
	Components interface {
		form.ComponentService
		form.ComponentCatalog
	}
	Products form.ProductService
	News     form.NewsService
	Media    editor.Uploader
}

// Failure is one record that could not be imported.
type Failure struct {
	Kind string
	Name string
	Err  error
}

type Report struct {
	Created  map[string]int
	Failures []Failure
}

type Importer struct {
	svc    Services
	logger logger.ZapLogger
}

func NewImporter(svc Services, log logger.ZapLogger) *Importer {
	return &Importer{svc: svc, logger: log}
}

// Run imports categories, components, products and news in that order so later
// records can reference earlier ones by name. A failed record is reported and
// skipped; records that depend on it fail with it.
func (im *Importer) Run(ctx context.Context, f *File) (*Report, error) {
	rep := &Report{Created: map[string]int{}}
	fail := func(kind, name string, err error) {
		im.logger.Warn("Seed record rejected", zap.String("kind", kind), zap.String("name", name), zap.Error(err))
		rep.Failures = append(rep.Failures, Failure{Kind: kind, Name: name, Err: err})
	}

	categoryIDs := map[string]string{}
	for _, c := range f.Categories {
		id, err := im.category(ctx, c, categoryIDs)
		if err != nil {
			fail("category", c.Name, err)
			continue
		}
		categoryIDs[c.Name] = id
		rep.Created["category"]++
	}

	componentIDs := map[string]string{}
	for _, c := range f.Components {
		id, err := im.component(ctx, c)
		if err != nil {
			fail("component", c.Name, err)
			continue
		}
		componentIDs[c.Name] = id
		rep.Created["component"]++
	}

	for _, p := range f.Products {
		if err := im.product(ctx, p, categoryIDs, componentIDs); err != nil {
			fail("product", p.Name, err)
			continue
		}
		rep.Created["product"]++
	}

	for _, a := range f.News {
		if err := im.article(ctx, a); err != nil {
			fail("news", a.Title, err)
			continue
		}
		rep.Created["news"]++
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

func (im *Importer) category(ctx context.Context, c Category, known map[string]string) (string, error) {
	fm := form.NewCategoryForm(im.svc.Categories)
	if err := fm.Load(ctx, ""); err != nil {
		return "", err
	}
	fm.Category.Name = c.Name
	fm.Category.Description = c.Description
	fm.Category.SortOrder = c.SortOrder
	if c.Parent != "" {
		id, ok := known[c.Parent]
		if !ok {
			return "", fmt.Errorf("unknown parent category %q", c.Parent)
		}
		fm.Category.ParentID = &id
	}
	saved, err := fm.Submit(ctx)
	if err != nil {
		return "", err
	}
	return saved.ID, nil
}

func (im *Importer) component(ctx context.Context, c Component) (string, error) {
	fm := form.NewComponentForm(im.svc.Components)
	if err := fm.Load(ctx, ""); err != nil {
		return "", err
	}
	fm.Component.Name = c.Name
	fm.Component.ComponentType = c.Type
	fm.Component.Description = c.Description
	fm.Component.Manufacturer = c.Manufacturer
	fm.Component.ModelNumber = c.ModelNumber
	if err := fillSpecs(fm.Specs, c.Specs); err != nil {
		return "", err
	}
	saved, err := fm.Submit(ctx)
	if err != nil {
		return "", err
	}
	return saved.ID, nil
}

func (im *Importer) product(ctx context.Context, p Product, categories, components map[string]string) error {
	fm := form.NewProductForm(im.svc.Products, im.svc.Components, im.svc.Media)
	if err := fm.Load(ctx, ""); err != nil {
		return err
	}
	fm.Product.Name = p.Name
	fm.Product.ShortDescription = p.ShortDescription
	fm.Product.Description = p.Description
	fm.Product.ProductType = p.Type
	fm.Product.Price = p.Price
	fm.Product.IsFeatured = p.Featured
	fm.Product.IsBestseller = p.Bestseller
	fm.Product.Tags = p.Tags
	if p.PriceMode != "" {
		fm.Product.PriceMode = p.PriceMode
	}
	if p.Status != "" {
		fm.Product.Status = p.Status
	}
	if p.Category != "" {
		id, ok := categories[p.Category]
		if !ok {
			return fmt.Errorf("unknown category %q", p.Category)
		}
		fm.Product.CategoryID = &id
	}

	if err := fillSpecs(fm.Specs, p.Specs); err != nil {
		return err
	}
	for _, m := range p.Media {
		if _, err := fm.Media.AddURL(m.URL, m.AltText); err != nil {
			return fmt.Errorf("media %q: %w", m.URL, err)
		}
	}
	for _, part := range p.Components {
		id, ok := components[part.Component]
		if !ok {
			return fmt.Errorf("unknown component %q", part.Component)
		}
		if _, err := fm.Components.Add(id); err != nil {
			return fmt.Errorf("component %q: %w", part.Component, err)
		}
		if err := fm.Components.Update(id, part.Quantity, part.Optional, part.Notes); err != nil {
			return err
		}
	}

	_, err := fm.Submit(ctx)
	return err
}

func (im *Importer) article(ctx context.Context, a Article) error {
	fm := form.NewNewsForm(im.svc.News)
	if err := fm.Load(ctx, ""); err != nil {
		return err
	}
	fm.Article.Title = a.Title
	fm.Article.Excerpt = a.Excerpt
	fm.Article.Content = a.Content
	fm.Article.Tags = a.Tags
	if a.Type != "" {
		fm.Article.NewsType = a.Type
	}
	fm.Publish(a.Published)
	_, err := fm.Submit(ctx)
	return err
}

// fillSpecs enters each spec the way an editor would: append a row, name it,
// pick its type and type in the value.
func fillSpecs(e *editor.SpecEditor, specs []Spec) error {
	for _, s := range specs {
		key := strings.TrimSpace(s.Key)
		kind := model.KindText
		if s.Type != "" {
			kind = model.SpecKind(s.Type)
		}
		if !kind.Valid() {
			return fmt.Errorf("spec %q: unknown type %q", key, s.Type)
		}
		row := e.Append()
		if !e.Rename(row, key) {
			e.Remove(row)
			return fmt.Errorf("spec %q: empty or duplicate key", key)
		}
		e.ChangeType(key, kind)
		e.SetValue(key, s.Value)
	}
	return nil
}
