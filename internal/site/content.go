package site

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

type Section struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Fact struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Content is the static marketing copy of the site.
type Content struct {
	Company struct {
		Name    string `yaml:"name"`
		Tagline string `yaml:"tagline"`
		Phone   string `yaml:"phone"`
		Email   string `yaml:"email"`
		Address string `yaml:"address"`
	} `yaml:"company"`
	Hero struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
		CTALabel string `yaml:"cta_label"`
		CTALink  string `yaml:"cta_link"`
	} `yaml:"hero"`
	Highlights []Section `yaml:"highlights"`
	About      struct {
		Intro    string    `yaml:"intro"`
		Facts    []Fact    `yaml:"facts"`
		Sections []Section `yaml:"sections"`
	} `yaml:"about"`
}

// LoadContent reads the embedded defaults and overlays path when it is set.
// Keys missing from path keep their default value.
func LoadContent(path string) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(defaultContent, &c); err != nil {
		return nil, fmt.Errorf("parse default content: %w", err)
	}
	if path == "" {
		return &c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse site content %s: %w", path, err)
	}
	return &c, nil
}
