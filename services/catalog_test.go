package services

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	if got := len(cat.Items()); got != 21 {
		t.Errorf("items = %d, want 21", got)
	}
	if got := len(cat.Categories()); got != 6 {
		t.Errorf("categories = %d, want 6", got)
	}
	if unknown := cat.UnknownCategories(); len(unknown) != 0 {
		t.Errorf("unknown categories in shipped catalog: %v", unknown)
	}

	first, ok := cat.Item("first-system")
	if !ok || !first.HasMax() || *first.MaxQuantity != 1 {
		t.Errorf("first-system max = %v, want 1", first.MaxQuantity)
	}
	placement, _ := cat.Item("placement")
	if placement.UnitPrice != 2280 || placement.Category != CategoryPhysical {
		t.Errorf("placement = %+v", placement)
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	neg := -1
	tests := []struct {
		name  string
		items []ServiceItem
		cats  []Category
		want  string
	}{
		{"duplicate id", []ServiceItem{{ID: "a", Category: "x"}, {ID: "a", Category: "x"}}, nil, "duplicate service id"},
		{"empty id", []ServiceItem{{Name: "n"}}, nil, "empty id"},
		{"negative price", []ServiceItem{{ID: "a", UnitPrice: -1}}, nil, "negative price"},
		{"negative max", []ServiceItem{{ID: "a", MaxQuantity: &neg}}, nil, "negative max"},
		{"duplicate category", nil, []Category{{Key: "x"}, {Key: "x"}}, "duplicate category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.items, tt.cats)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("NewCatalog() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMustCatalog_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCatalog([]ServiceItem{{ID: "a"}, {ID: "a"}}, nil)
}

func TestCatalog_ItemsAreCopies(t *testing.T) {
	cat := DefaultCatalog()
	items := cat.Items()
	items[0].UnitPrice = 1
	*items[19].MaxQuantity = 99

	again := cat.Items()
	if again[0].UnitPrice == 1 {
		t.Error("mutating Items() leaked into catalog")
	}
	if *again[19].MaxQuantity != 1 {
		t.Error("mutating MaxQuantity leaked into catalog")
	}
}

func TestCatalog_CategoryFallback(t *testing.T) {
	cat := DefaultCatalog()
	c, ok := cat.Category(CategoryStorage)
	if !ok || c.Label != "Lagring" {
		t.Errorf("Category(storage) = %+v, %v", c, ok)
	}
	c, ok = cat.Category("nätverk")
	if ok || c.Label != "nätverk" {
		t.Errorf("Category(unknown) = %+v, %v; want raw key label", c, ok)
	}
}

func TestCatalog_ResolveCategory(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		input   string
		wantKey string
		wantOK  bool
	}{
		{"web", CategoryWeb, true},
		{"  Storage ", CategoryStorage, true},
		{"Databashotell", CategoryDatabase, true},
		{"beredskap", CategoryBackup, true},
		{"Nätverk", "Nätverk", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, ok := cat.ResolveCategory(tt.input)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("ResolveCategory(%q) = %q, %v; want %q, %v", tt.input, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}

func TestCatalog_UnknownCategories(t *testing.T) {
	cat := MustCatalog([]ServiceItem{
		{ID: "a", Category: "x"},
		{ID: "b", Category: "y"},
		{ID: "c", Category: "x"},
		{ID: "d", Category: "known"},
	}, []Category{{Key: "known"}})
	got := cat.UnknownCategories()
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("UnknownCategories() = %v, want [x y]", got)
	}
}
