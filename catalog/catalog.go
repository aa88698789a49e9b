package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrNotFound signals the requested property does not exist in the catalog.
var ErrNotFound = errors.New("catalog: property not found")

//go:embed data/properties.json
var propertiesJSON []byte

// Property is one listing from the static catalog. The catalog is immutable for
// the lifetime of the process; nothing in this service writes property data.
type Property struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	City  string  `json:"city"`
	Rent  int     `json:"rent"`
	Beds  int     `json:"beds"`
	Baths float64 `json:"baths"`
	Image string  `json:"image"`
}

// Catalog holds the ordered property list loaded once at startup.
type Catalog struct {
	properties []Property
	byID       map[string]Property
}

// Load parses the embedded catalog file.
func Load() (*Catalog, error) {
	var properties []Property
	if err := json.Unmarshal(propertiesJSON, &properties); err != nil {
		return nil, fmt.Errorf("catalog: parse properties: %w", err)
	}
	return New(properties), nil
}

// New builds a catalog from an explicit property list. Tests use it to avoid
// depending on the embedded data set.
func New(properties []Property) *Catalog {
	byID := make(map[string]Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	return &Catalog{properties: properties, byID: byID}
}

// All returns the catalog in its original order.
func (c *Catalog) All() []Property {
	out := make([]Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// GetByID fetches one property.
func (c *Catalog) GetByID(id string) (Property, error) {
	p, ok := c.byID[id]
	if !ok {
		return Property{}, ErrNotFound
	}
	return p, nil
}

// Filters narrows the catalog listing. Zero values mean "no constraint".
type Filters struct {
	Search  string
	City    string
	MinRent int
	MaxRent int
	MinBeds int
}

// Filter returns properties matching every set filter, preserving catalog order.
func (c *Catalog) Filter(f Filters) []Property {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	city := strings.ToLower(strings.TrimSpace(f.City))

	out := []Property{}
	for _, p := range c.properties {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.City), search) {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(p.City), city) {
			continue
		}
		if f.MinRent > 0 && p.Rent < f.MinRent {
			continue
		}
		if f.MaxRent > 0 && p.Rent > f.MaxRent {
			continue
		}
		if f.MinBeds > 0 && p.Beds < f.MinBeds {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Cities returns the distinct cities in the catalog, sorted.
func (c *Catalog) Cities() []string {
	seen := map[string]bool{}
	cities := []string{}
	for _, p := range c.properties {
		if !seen[p.City] {
			seen[p.City] = true
			cities = append(cities, p.City)
		}
	}
	sort.Strings(cities)
	return cities
}

// AverageRentByCity groups the catalog by city and averages rent, rounded to
// the nearest integer.
func (c *Catalog) AverageRentByCity() map[string]int {
	totals := map[string]int{}
	counts := map[string]int{}
	for _, p := range c.properties {
		totals[p.City] += p.Rent
		counts[p.City]++
	}

	avg := make(map[string]int, len(totals))
	for city, total := range totals {
		avg[city] = int(math.Round(float64(total) / float64(counts[city])))
	}
	return avg
}
