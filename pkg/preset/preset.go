// Package preset holds the known institutions and their address
// conventions, built in or loaded from YAML manifests.
package preset

import (
	"fmt"
	"os"
	"strings"

	"github.com/hazyhaar/zemailer/pkg/pattern"
	"gopkg.in/yaml.v3"
)

// Preset is an institution with one or more address templates.
type Preset struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Templates []string `yaml:"templates" json:"templates"`
	Domain    string   `yaml:"domain" json:"domain,omitempty"`
	Country   string   `yaml:"country" json:"country,omitempty"`
	Source    string   `yaml:"-" json:"source"`
}

// Validate normalizes the preset and checks that every template classifies
// and that the domain, when set, is under a known public suffix.
func (p *Preset) Validate() error {
	p.ID = strings.ToLower(strings.TrimSpace(p.ID))
	if p.ID == "" {
		return fmt.Errorf("preset: missing id")
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if len(p.Templates) == 0 {
		return fmt.Errorf("preset %s: no template", p.ID)
	}
	for _, t := range p.Templates {
		if _, err := pattern.Classify(t); err != nil {
			return fmt.Errorf("preset %s: %w", p.ID, err)
		}
	}
	if err := pattern.CheckDomain(p.Domain); err != nil {
		return fmt.Errorf("preset %s: %w", p.ID, err)
	}
	p.Domain = pattern.NormalizeDomain(p.Domain)
	return nil
}

// manifest is the on-disk form. It accepts a single "template" as a
// shorthand for a one-element "templates" list.
type manifest struct {
	Preset   `yaml:",inline"`
	Template string `yaml:"template"`
}

// LoadManifest reads and validates one preset YAML file.
func LoadManifest(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	p := m.Preset
	if m.Template != "" {
		p.Templates = append([]string{m.Template}, p.Templates...)
	}
	p.Source = path
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &p, nil
}

// Builtins returns the institutions shipped with the binary.
func Builtins() []Preset {
	return []Preset{
		{ID: "edhec", Name: "EDHEC Business School", Templates: []string{"nom.prenom"}, Domain: "edhec.com", Country: "fr"},
		{ID: "hec", Name: "HEC Paris", Templates: []string{"nomp", "nom"}, Domain: "hec.fr", Country: "fr"},
		{ID: "emlyon", Name: "EM Lyon", Templates: []string{"nom.prenom"}, Domain: "em-lyon.com", Country: "fr"},
		{ID: "skema", Name: "SKEMA Business School", Templates: []string{"prenom.nom"}, Domain: "skema.edu", Country: "fr"},
		{ID: "polytechnique", Name: "Ecole Polytechnique", Templates: []string{"prenom.nom"}, Domain: "polytechnique.edu", Country: "fr"},
		{ID: "escp", Name: "ESCP Business School", Templates: []string{"pnom"}, Domain: "escpeurope.eu", Country: "fr"},
		{ID: "centrale-paris", Name: "CentraleSupelec", Templates: []string{"nom.prenom"}, Country: "fr"},
		{ID: "centrale-lille", Name: "Centrale Lille", Templates: []string{"nom.prenom"}, Country: "fr"},
		{ID: "hei", Name: "HEI", Templates: []string{"nom.prenom"}, Country: "fr"},
		{ID: "kedge", Name: "KEDGE Business School", Templates: []string{"prenom.nom"}, Domain: "kedgebs.com", Country: "fr"},
		{ID: "iscom", Name: "ISCOM", Templates: []string{"prenom.nom"}, Domain: "iscom.fr", Country: "fr"},
		{ID: "essec", Name: "ESSEC Business School", Templates: []string{"nom", "nomp"}, Domain: "essec.edu", Country: "fr"},
		{ID: "neoma", Name: "NEOMA Business School", Templates: []string{"prenom.nom"}, Domain: "neoma.fr", Country: "fr"},
	}
}
