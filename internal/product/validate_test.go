package product

import (
	"testing"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_DerivesSlugAndDefaults(t *testing.T) {
	p := &model.Product{Name: "  Industrial Mixer X ", ProductType: model.ProductTypeMachine}
	require.NoError(t, Prepare(p))

	assert.Equal(t, "Industrial Mixer X", p.Name)
	assert.Equal(t, "industrial-mixer-x", p.Slug)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, model.PriceModeOnRequest, p.PriceMode)
	assert.Equal(t, model.StatusDraft, p.Status)
}

func TestPrepare_KeepsExplicitSlug(t *testing.T) {
	p := &model.Product{Name: "Mixer", Slug: "mixer-2000", ProductType: model.ProductTypeMachine}
	require.NoError(t, Prepare(p))
	assert.Equal(t, "mixer-2000", p.Slug)
}

func TestPrepare_FieldErrors(t *testing.T) {
	neg := -1.0
	level := "robotic"
	p := &model.Product{
		Slug:            "Not Valid",
		Price:           &neg,
		PriceMode:       model.PriceModeFixed,
		AutomationLevel: &level,
		Status:          "deleted",
	}

	err := Prepare(p)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"name", "slug", "product_type", "price", "automation_level", "status"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestPrepare_FixedPriceNeedsAmount(t *testing.T) {
	p := &model.Product{Name: "Mixer", ProductType: model.ProductTypeMachine, PriceMode: model.PriceModeFixed}
	err := Prepare(p)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price is required unless it is on request", verr.Fields["price"])
}

func TestPrepare_EmptyAutomationLevelBecomesNil(t *testing.T) {
	empty := ""
	p := &model.Product{Name: "Mixer", ProductType: model.ProductTypeMachine, AutomationLevel: &empty}
	require.NoError(t, Prepare(p))
	assert.Nil(t, p.AutomationLevel)
}

func TestCheckLinks_RejectsDuplicateComponent(t *testing.T) {
	links := []model.ProductComponent{{ComponentID: "c1"}, {ComponentID: "c2"}, {ComponentID: "c1"}}

	err := CheckLinks(links)

	var v *model.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields["components"], "c1")
	assert.NoError(t, CheckLinks(links[:2]))
}
