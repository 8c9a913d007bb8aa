package catalog

import (
	"context"
	"fmt"
	"strings"
)

// SubService groups the keywords that signal relevance for one part of an offering
type SubService struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Service is one offering in the catalog with its keyword taxonomy and scoring weights
type Service struct {
	Key             string             `json:"key" yaml:"key"`
	Title           string             `json:"title" yaml:"title"`
	Icon            string             `json:"icon" yaml:"icon"`
	SubServices     []SubService       `json:"sub_services" yaml:"sub_services"`
	Benefits        []string           `json:"benefits" yaml:"benefits"`
	Timeline        map[string]string  `json:"timeline" yaml:"timeline"`
	IndustryWeight  map[string]float64 `json:"industry_weight" yaml:"industry_weight"`
	SizeSuitability map[string]float64 `json:"size_suitability" yaml:"size_suitability"`
	Synergies       []string           `json:"synergies" yaml:"synergies"`
}

// IndustryMultiplier returns the weight for an industry, 1.0 when the industry is not listed
func (s *Service) IndustryMultiplier(industry string) float64 {
	if w, ok := s.IndustryWeight[industry]; ok {
		return w
	}
	return 1.0
}

// SizeMultiplier returns the suitability for a business size, 1.0 when the size is not listed
func (s *Service) SizeMultiplier(size string) float64 {
	if w, ok := s.SizeSuitability[size]; ok {
		return w
	}
	return 1.0
}

// HasSynergy reports whether key is listed in the service's synergies
func (s *Service) HasSynergy(key string) bool {
	for _, k := range s.Synergies {
		if k == key {
			return true
		}
	}
	return false
}

// TimelineFor returns the display timeline for a size, empty when unknown
func (s *Service) TimelineFor(size string) string {
	return s.Timeline[size]
}

// Catalog is the ordered set of offerings. Order is the tie-break for equal scores.
type Catalog struct {
	Services []Service `json:"services" yaml:"services"`
}

// Provider supplies the catalog used for scoring
type Provider interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// Lookup finds a service by key
func (c *Catalog) Lookup(key string) (*Service, bool) {
	for i := range c.Services {
		if c.Services[i].Key == key {
			return &c.Services[i], true
		}
	}
	return nil, false
}

// Keys returns service keys in catalog order
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Services))
	for i, s := range c.Services {
		keys[i] = s.Key
	}
	return keys
}

// Validate asserts the catalog is usable for scoring: unique keys, at least one
// keyword per sub-service, positive multipliers and synergies that resolve.
func (c *Catalog) Validate() error {
	if len(c.Services) == 0 {
		return fmt.Errorf("catalog has no services")
	}

	seen := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if strings.TrimSpace(s.Key) == "" {
			return fmt.Errorf("service %q has an empty key", s.Title)
		}
		if seen[s.Key] {
			return fmt.Errorf("duplicate service key %q", s.Key)
		}
		seen[s.Key] = true
	}

	for _, s := range c.Services {
		for _, sub := range s.SubServices {
			if len(sub.Keywords) == 0 {
				return fmt.Errorf("service %s: sub-service %q has no keywords", s.Key, sub.Name)
			}
			for _, kw := range sub.Keywords {
				if strings.TrimSpace(kw) == "" {
					return fmt.Errorf("service %s: sub-service %q has a blank keyword", s.Key, sub.Name)
				}
			}
		}
		for industry, w := range s.IndustryWeight {
			if !(w > 0) {
				return fmt.Errorf("service %s: industry weight for %s must be positive, got %v", s.Key, industry, w)
			}
		}
		for size, w := range s.SizeSuitability {
			if !(w > 0) {
				return fmt.Errorf("service %s: size suitability for %s must be positive, got %v", s.Key, size, w)
			}
		}
		for _, syn := range s.Synergies {
			if syn == s.Key {
				return fmt.Errorf("service %s lists itself as a synergy", s.Key)
			}
			if !seen[syn] {
				return fmt.Errorf("service %s: unknown synergy %q", s.Key, syn)
			}
		}
	}

	return nil
}
