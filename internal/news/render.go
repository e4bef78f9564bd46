package news

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// Raw HTML passes through to the sanitizer below.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy   = bluemonday.UGCPolicy()
)

// Render converts article markdown to HTML and strips anything unsafe.
func Render(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
