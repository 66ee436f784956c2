// Package content serves the copy of the static informational pages.
package content

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed pages.yaml
var defaultPages []byte

type Item struct {
	Title       string `yaml:"title" json:"title"`
	Subtitle    string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Rating      int    `yaml:"rating,omitempty" json:"rating,omitempty"`
}

type Section struct {
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body,omitempty" json:"body,omitempty"`
	Items   []Item `yaml:"items,omitempty" json:"items,omitempty"`
}

type Page struct {
	Slug     string    `yaml:"-" json:"slug"`
	Title    string    `yaml:"title" json:"title"`
	Subtitle string    `yaml:"subtitle" json:"subtitle"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Library holds pages by slug.
type Library struct {
	pages map[string]Page
}

// Load parses the embedded page content.
func Load() (*Library, error) {
	return Parse(defaultPages)
}

// Parse builds a Library from YAML keyed by page slug.
func Parse(data []byte) (*Library, error) {
	pages := map[string]Page{}
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}
	for slug, p := range pages {
		if p.Title == "" {
			return nil, fmt.Errorf("page %q has no title", slug)
		}
		p.Slug = slug
		pages[slug] = p
	}
	return &Library{pages: pages}, nil
}

// Page returns the page with the given slug.
func (l *Library) Page(slug string) (Page, bool) {
	p, ok := l.pages[slug]
	return p, ok
}

// Slugs returns the known page slugs in sorted order.
func (l *Library) Slugs() []string {
	slugs := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
