package catalog

import (
	"testing"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
)

func price(f float64) *float64 { return &f }

func names(ps []model.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func sampleProducts() []model.Product {
	mixers := "mixers"
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Product{
		{BaseModel: model.BaseModel{ID: "1", CreatedAt: base}, Name: "Industrial Mixer X", ProductType: "machine", CategoryID: &mixers, Price: price(12000), Tags: []string{"food"}},
		{BaseModel: model.BaseModel{ID: "2", CreatedAt: base.Add(48 * time.Hour)}, Name: "bottling line", ProductType: "production_line", Description: "Complete MIXER-fed line"},
		{BaseModel: model.BaseModel{ID: "3", CreatedAt: base.Add(24 * time.Hour)}, Name: "Conveyor Belt", ProductType: "accessory", Price: price(800)},
	}
}

func TestProducts_EmptyTermReturnsEverythingInFetchOrder(t *testing.T) {
	items := sampleProducts()
	got := Products(items, ProductQuery{})
	assert.Equal(t, items, got)

	got = Products(items, ProductQuery{Term: "   "})
	assert.Equal(t, items, got)
}

func TestProducts_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	got := Products(sampleProducts(), ProductQuery{Term: "mixer"})
	assert.Equal(t, []string{"Industrial Mixer X", "bottling line"}, names(got))

	got = Products(sampleProducts(), ProductQuery{Term: "FOOD"})
	assert.Equal(t, []string{"Industrial Mixer X"}, names(got))
}

func TestProducts_Filters(t *testing.T) {
	got := Products(sampleProducts(), ProductQuery{CategoryID: "mixers"})
	assert.Equal(t, []string{"Industrial Mixer X"}, names(got))

	got = Products(sampleProducts(), ProductQuery{ProductType: "accessory"})
	assert.Equal(t, []string{"Conveyor Belt"}, names(got))
}

func TestProducts_Sorts(t *testing.T) {
	items := sampleProducts()

	assert.Equal(t, []string{"bottling line", "Conveyor Belt", "Industrial Mixer X"}, names(Products(items, ProductQuery{Sort: SortName})))
	assert.Equal(t, []string{"Industrial Mixer X", "Conveyor Belt", "bottling line"}, names(Products(items, ProductQuery{Sort: SortNameDesc})))
	assert.Equal(t, []string{"Conveyor Belt", "Industrial Mixer X", "bottling line"}, names(Products(items, ProductQuery{Sort: SortPriceAsc})))
	assert.Equal(t, []string{"Industrial Mixer X", "Conveyor Belt", "bottling line"}, names(Products(items, ProductQuery{Sort: SortPriceDesc})))
	assert.Equal(t, []string{"bottling line", "Conveyor Belt", "Industrial Mixer X"}, names(Products(items, ProductQuery{Sort: SortNewest})))

	// The caller's slice keeps its order.
	assert.Equal(t, "Industrial Mixer X", items[0].Name)
}

func TestComponents(t *testing.T) {
	items := []model.Component{
		{Name: "Servo Motor", ComponentType: "drive", Manufacturer: "Siemens"},
		{Name: "Vacuum Pump", ComponentType: "pneumatics", Manufacturer: "Busch"},
		{Name: "PLC", ComponentType: "controller", Manufacturer: "ABB", Description: "siemens compatible"},
	}

	got := Components(items, ComponentQuery{Term: "siemens", Sort: SortManufacturer})
	assert.Len(t, got, 2)
	assert.Equal(t, "PLC", got[0].Name)

	got = Components(items, ComponentQuery{ComponentType: "pneumatics"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Vacuum Pump", got[0].Name)
}

func TestNews_DefaultNewestFirst(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	items := []model.NewsArticle{
		{Title: "Trade fair", NewsType: "event", PublishedAt: &t1},
		{Title: "New plant", NewsType: "news", PublishedAt: &t2},
	}

	got := News(items, NewsQuery{})
	assert.Equal(t, "New plant", got[0].Title)

	got = News(items, NewsQuery{NewsType: "event"})
	assert.Len(t, got, 1)

	got = News(items, NewsQuery{Sort: SortOldest})
	assert.Equal(t, "Trade fair", got[0].Title)
}
