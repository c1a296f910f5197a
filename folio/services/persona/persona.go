// Package persona holds the fixed business-knowledge document that grounds
// every assistant reply, plus the prompt renderer. The document is
// hand-authored, loaded once at startup, and never exposed to clients.
package persona

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tier struct {
	Name    string   `yaml:"name"`
	Price   string   `yaml:"price"`
	Bullets []string `yaml:"bullets"`
}

type AddOn struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Document struct {
	Operator   string   `yaml:"operator"`
	Intro      string   `yaml:"intro"`
	Services   []string `yaml:"services"`
	Tiers      []Tier   `yaml:"tiers"`
	AddOns     []AddOn  `yaml:"add_ons"`
	Guidelines []string `yaml:"guidelines"`
}

func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read persona document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse persona document: %w", err)
	}
	if doc.Operator == "" {
		return Document{}, fmt.Errorf("persona document %s has no operator", path)
	}
	return doc, nil
}

// Preamble renders the document as the paragraph block prepended to every
// prompt.
func (d Document) Preamble() string {
	var sb strings.Builder
	sb.WriteString("You are the website assistant for " + d.Operator + ". ")
	sb.WriteString(d.Intro)
	sb.WriteString("\n\nServices offered:\n")
	for _, s := range d.Services {
		sb.WriteString("- " + s + "\n")
	}
	sb.WriteString("\nPricing:\n")
	for _, t := range d.Tiers {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", t.Name, t.Price, strings.Join(t.Bullets, "; ")))
	}
	if len(d.AddOns) > 0 {
		sb.WriteString("\nAdd-ons:\n")
		for _, a := range d.AddOns {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", a.Label, a.Value))
		}
	}
	sb.WriteString("\nCommunication guidelines:\n")
	for _, g := range d.Guidelines {
		sb.WriteString("- " + g + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
