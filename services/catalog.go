package services

import (
	"fmt"
	"strings"
)

// ServiceItem is one priced line in the catalog.
type ServiceItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitPrice   float64 `json:"price"`
	Unit        string  `json:"unit,omitempty"`
	Category    string  `json:"category"`
	MaxQuantity *int    `json:"maxQuantity,omitempty"`
}

// HasMax reports whether the item caps its quantity.
func (s ServiceItem) HasMax() bool {
	return s.MaxQuantity != nil
}

// Category groups service items for display.
type Category struct {
	Key   string
	Label string
	Icon  string
}

// Catalog is an ordered, validated set of service items together with the
// category metadata used to group them. A Catalog is never mutated after
// construction; the Session keeps its own working copy of the items.
type Catalog struct {
	items      []ServiceItem
	categories []Category
	byID       map[string]int
	byCategory map[string]int
}

// NewCatalog validates items and categories and builds a Catalog.
// Duplicate ids, negative prices and negative maxima are rejected.
func NewCatalog(items []ServiceItem, categories []Category) (*Catalog, error) {
	c := &Catalog{
		items:      make([]ServiceItem, 0, len(items)),
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int, len(items)),
		byCategory: make(map[string]int, len(categories)),
	}

	for _, cat := range categories {
		if cat.Key == "" {
			return nil, fmt.Errorf("category with empty key")
		}
		if _, dup := c.byCategory[cat.Key]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Key)
		}
		c.byCategory[cat.Key] = len(c.categories)
		c.categories = append(c.categories, cat)
	}

	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("service %q has empty id", it.Name)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate service id %q", it.ID)
		}
		if it.UnitPrice < 0 {
			return nil, fmt.Errorf("service %q: negative price %v", it.ID, it.UnitPrice)
		}
		if it.MaxQuantity != nil && *it.MaxQuantity < 0 {
			return nil, fmt.Errorf("service %q: negative max quantity %d", it.ID, *it.MaxQuantity)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, cloneItem(it))
	}

	return c, nil
}

// MustCatalog is NewCatalog for static data; it panics on invalid input.
func MustCatalog(items []ServiceItem, categories []Category) *Catalog {
	c, err := NewCatalog(items, categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []ServiceItem {
	out := make([]ServiceItem, len(c.items))
	for i, it := range c.items {
		out[i] = cloneItem(it)
	}
	return out
}

// Categories returns the known categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (ServiceItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ServiceItem{}, false
	}
	return cloneItem(c.items[i]), true
}

// Category looks up category metadata. Unknown keys yield a Category whose
// label is the raw key, so display never breaks.
func (c *Catalog) Category(key string) (Category, bool) {
	if i, ok := c.byCategory[key]; ok {
		return c.categories[i], true
	}
	return Category{Key: key, Label: key}, false
}

// DefaultPrices returns the catalog's own unit prices keyed by item id.
func (c *Catalog) DefaultPrices() map[string]float64 {
	prices := make(map[string]float64, len(c.items))
	for _, it := range c.items {
		prices[it.ID] = it.UnitPrice
	}
	return prices
}

// UnknownCategories lists category keys referenced by items but missing from
// the category set, in first-seen order.
func (c *Catalog) UnknownCategories() []string {
	return unknownCategories(c.items, c.byCategory)
}

// ResolveCategory maps user input to a known category key by matching keys
// and labels case-insensitively. Unmatched input is returned trimmed and
// ok is false.
func (c *Catalog) ResolveCategory(input string) (key string, ok bool) {
	in := strings.TrimSpace(input)
	for _, cat := range c.categories {
		if strings.EqualFold(cat.Key, in) || strings.EqualFold(cat.Label, in) {
			return cat.Key, true
		}
	}
	return in, false
}

func unknownCategories(items []ServiceItem, known map[string]int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if _, ok := known[it.Category]; ok || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}

func cloneItem(it ServiceItem) ServiceItem {
	if it.MaxQuantity != nil {
		m := *it.MaxQuantity
		it.MaxQuantity = &m
	}
	return it
}

func intPtr(n int) *int { return &n }
