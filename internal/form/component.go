package form

import (
	"context"

	"github.com/forgeline/equipment-cms/internal/component"
	"github.com/forgeline/equipment-cms/internal/component/dto"
	"github.com/forgeline/equipment-cms/internal/editor"
	"github.com/forgeline/equipment-cms/internal/model"
)

type ComponentService interface {
	GetComponent(ctx context.Context, id string) (*model.Component, error)
	SaveComponent(ctx context.Context, input *dto.SaveComponentInput) (*model.Component, error)
}

type ComponentForm struct {
	lifecycle

	components ComponentService

	Component model.Component
	Specs     *editor.SpecEditor
}

func NewComponentForm(components ComponentService) *ComponentForm {
	return &ComponentForm{components: components}
}

func (f *ComponentForm) Load(ctx context.Context, id string) error {
	f.state = Loading
	c := &model.Component{IsActive: true}
	if id != "" {
		var err error
		if c, err = f.components.GetComponent(ctx, id); err != nil {
			return f.loaded(err, f.loadedAt)
		}
	}
	f.Component = *c
	f.Specs = editor.NewSpecEditor(c.Specifications, func(m model.SpecMap) { f.Component.Specifications = m })
	return f.loaded(nil, c.UpdatedAt)
}

func (f *ComponentForm) Submit(ctx context.Context) (*model.Component, error) {
	if err := f.begin(); err != nil {
		return nil, err
	}

	c := f.Component
	c.Specifications = f.Specs.Map()
	if err := component.Prepare(&c); err != nil {
		return nil, f.finish(err, f.loadedAt)
	}

	saved, err := f.components.SaveComponent(ctx, &dto.SaveComponentInput{Component: c, LoadedAt: f.loadedAt})
	if err != nil {
		return nil, f.finish(err, f.loadedAt)
	}
	f.Component = *saved
	return saved, f.finish(nil, saved.UpdatedAt)
}
