// file: services/catalog.go
package services

import (
	_ "embed"
	"fmt"

	"MYR/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const defaultEventColor = "#6c757d"

type SessionLeader struct {
	Name  string `yaml:"name" json:"name"`
	Intro string `yaml:"intro" json:"intro"`
	Insta string `yaml:"insta" json:"insta"`
}

type CatalogInstrument struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type CatalogSession struct {
	Type        models.UserSession  `yaml:"type"`
	Leader      *SessionLeader      `yaml:"leader"`
	Instruments []CatalogInstrument `yaml:"instruments"`
}

// Catalog is the static description of the club's sessions and shared gear.
type Catalog struct {
	Sessions []CatalogSession `yaml:"sessions"`
}

// LoadCatalog decodes a catalog; nil data loads the embedded default.
func LoadCatalog(data []byte) (*Catalog, error) {
	if data == nil {
		data = defaultCatalog
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool)
	for _, s := range c.Sessions {
		if _, ok := models.ParseSession(string(s.Type)); !ok {
			return nil, fmt.Errorf("catalog: unknown session %q", s.Type)
		}
		for _, inst := range s.Instruments {
			if inst.Code == "" {
				return nil, fmt.Errorf("catalog: instrument without code in %s", s.Type)
			}
			if seen[inst.Code] {
				return nil, fmt.Errorf("catalog: duplicate instrument %q", inst.Code)
			}
			seen[inst.Code] = true
		}
	}
	return &c, nil
}

func (c *Catalog) Session(t models.UserSession) (CatalogSession, bool) {
	for _, s := range c.Sessions {
		if s.Type == t {
			return s, true
		}
	}
	return CatalogSession{}, false
}

// Color returns the calendar color of an instrument code.
func (c *Catalog) Color(code string) string {
	for _, s := range c.Sessions {
		for _, inst := range s.Instruments {
			if inst.Code == code && inst.Color != "" {
				return inst.Color
			}
		}
	}
	return defaultEventColor
}

// Instruments flattens the catalog into rows for the instruments table.
func (c *Catalog) Instruments() []models.Instrument {
	var out []models.Instrument
	for _, s := range c.Sessions {
		for _, inst := range s.Instruments {
			out = append(out, models.Instrument{
				Code:        inst.Code,
				Name:        inst.Name,
				Session:     s.Type,
				Color:       inst.Color,
				IsAvailable: true,
			})
		}
	}
	return out
}
