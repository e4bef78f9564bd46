package site

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/forgeline/equipment-cms/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "about", "products", "product", "components", "component", "news", "article", "auth", "error"}

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"price":    price,
	"image":    primaryImage,
	"number":   number,
	"specRows": specRows,
	"date":     date,
	"label":    label,
	"join":     strings.Join,
	"year":     func() int { return time.Now().Year() },
}

// parsePages builds one template set per page, each sharing the layout.
func parsePages() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func productOf(v interface{}) *model.Product {
	switch p := v.(type) {
	case model.Product:
		return &p
	case *model.Product:
		return p
	}
	return nil
}

func primaryImage(v interface{}) string {
	if p := productOf(v); p != nil {
		return p.PrimaryImage()
	}
	return ""
}

// price renders the product's pricing line; products without an amount are "on request".
func price(v interface{}) string {
	p := productOf(v)
	if p == nil || p.Price == nil || p.PriceMode == model.PriceModeOnRequest {
		return "Price on request"
	}
	amount := printer.Sprintf("%.2f %s", *p.Price, p.Currency)
	if p.PriceMode == model.PriceModeFrom {
		return "From " + amount
	}
	return amount
}

func number(v interface{}) string {
	switch n := v.(type) {
	case *float64:
		if n == nil {
			return ""
		}
		return printer.Sprintf("%v", *n)
	case float64:
		return printer.Sprintf("%v", n)
	case int:
		return printer.Sprintf("%d", n)
	}
	return fmt.Sprint(v)
}

type specRow struct {
	Key   string
	Value string
}

func specRows(m model.SpecMap) []specRow {
	rows := make([]specRow, 0, len(m))
	for _, k := range m.Keys() {
		v := m[k]
		value := v.String()
		if v.Kind() == model.KindBool {
			value = "No"
			if v.AsBool() {
				value = "Yes"
			}
		}
		rows = append(rows, specRow{Key: label(k), Value: value})
	}
	return rows
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2 January 2006")
}

// label turns identifiers such as "production_line" into "Production Line".
func label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
