package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftcalc/services"
	"driftcalc/testhelpers"
)

func TestHandleCalculator_FullPage(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := serve(t, HandleCalculator(deps), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<!doctype html>"))
	assert.Contains(t, rec.Body.String(), "Total årskostnad")
}

func TestHandleCalculator_HTMXFragment(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")

	rec := serve(t, HandleCalculator(deps), req)

	assert.True(t, strings.HasPrefix(rec.Body.String(), `<main id="calculator"`))
}

func TestHandleQuantitySet(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		quantity string
		status   int
		want     int
		reswap   string
	}{
		{"valid", "placement", "3", http.StatusOK, 3, ""},
		{"empty clears", "placement", "", http.StatusOK, 0, ""},
		{"negative", "placement", "-1", http.StatusUnprocessableEntity, 0, "outerHTML"},
		{"above max", "first-system", "2", http.StatusUnprocessableEntity, 0, "outerHTML"},
		{"not a number", "placement", "tre", http.StatusUnprocessableEntity, 0, "outerHTML"},
		{"unknown id", "nope", "1", http.StatusNotFound, 0, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newTestDeps(t)
			req := newFormRequest(http.MethodPost, "/quantities/"+tt.id, tt.id, url.Values{"quantity": {tt.quantity}})

			rec := serve(t, HandleQuantitySet(deps), req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, deps.Session.Quantity(tt.id))
			assert.Equal(t, tt.reswap, rec.Header().Get("HX-Reswap"))
		})
	}
}

func TestHandleQuantitySet_RejectionShowsNotice(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := newFormRequest(http.MethodPost, "/quantities/first-system", "first-system", url.Values{"quantity": {"2"}})

	rec := serve(t, HandleQuantitySet(deps), req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<main id="calculator"`))
	assert.Contains(t, body, `<p class="notice" role="alert">Högst 1 för Beredskap 1:a systemet</p>`)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "Högst 1 för Beredskap 1:a systemet")
	assert.NotContains(t, body, "must be at most")
}

func TestHandlePriceSet_RejectionShowsNotice(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Session.BeginEdit()
	req := newFormRequest(http.MethodPost, "/prices/placement", "placement", url.Values{"price": {"gratis"}})

	rec := serve(t, HandlePriceSet(deps), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pris måste vara ett tal")
}

func TestHandleQuantitySet_RendersTotals(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := newFormRequest(http.MethodPost, "/quantities/placement", "placement", url.Values{"quantity": {"3"}})

	rec := serve(t, HandleQuantitySet(deps), req)

	assert.Contains(t, rec.Body.String(), "6 840 kr")
}

func TestHandleQuantitiesReset(t *testing.T) {
	deps, _ := newTestDeps(t)
	require.NoError(t, deps.Session.SetQuantity("mssql", 2))

	rec := serve(t, HandleQuantitiesReset(deps), newFormRequest(http.MethodPost, "/quantities/reset", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, deps.Session.Quantity("mssql"))
}

func TestHandlePriceSet_RequiresEditing(t *testing.T) {
	deps, _ := newTestDeps(t)
	req := newFormRequest(http.MethodPost, "/prices/placement", "placement", url.Values{"price": {"2500"}})

	rec := serve(t, HandlePriceSet(deps), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	price, _ := deps.Session.Price("placement")
	assert.Equal(t, 2280.0, price)
}

func TestEditFlow_PersistsPrices(t *testing.T) {
	deps, store := newTestDeps(t)

	serve(t, HandleEditBegin(deps), newFormRequest(http.MethodPost, "/edit/begin", "", nil))
	assert.Equal(t, services.ModeEditing, deps.Session.Mode())

	rec := serve(t, HandlePriceSet(deps), newFormRequest(http.MethodPost, "/prices/placement", "placement", url.Values{"price": {"2500"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, HandleEditEnd(deps), newFormRequest(http.MethodPost, "/edit/end", "", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "Priser sparade")
	assert.Equal(t, services.ModeViewing, deps.Session.Mode())

	raw, err := store.Load("test")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"placement":2500`)
}

func TestHandleEditEnd_SaveFailureWarns(t *testing.T) {
	deps, store := newTestDeps(t)
	deps.Session.BeginEdit()
	store.FailSaves = true

	rec := serve(t, HandleEditEnd(deps), newFormRequest(http.MethodPost, "/edit/end", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "warning")
	assert.Equal(t, services.ModeViewing, deps.Session.Mode())
}

func TestHandlePriceSet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		price string
	}{
		{"negative", "-5"},
		{"text", "gratis"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newTestDeps(t)
			deps.Session.BeginEdit()

			rec := serve(t, HandlePriceSet(deps), newFormRequest(http.MethodPost, "/prices/placement", "placement", url.Values{"price": {tt.price}}))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestHandleServiceAdd(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Session.BeginEdit()
	form := url.Values{
		"name":        {"Lastbalanserare"},
		"price":       {"4200"},
		"category":    {"Virtuella servrar"},
		"unit":        {"st/år"},
		"maxQuantity": {"2"},
	}

	rec := serve(t, HandleServiceAdd(deps), newFormRequest(http.MethodPost, "/services", "", form))

	require.Equal(t, http.StatusOK, rec.Code)
	view := deps.Session.View()
	added := view.Items[len(view.Items)-1]
	assert.True(t, strings.HasPrefix(added.ID, services.CustomIDPrefix))
	assert.Equal(t, services.CategoryVirtual, added.Category)
	require.NotNil(t, added.MaxQuantity)
	assert.Equal(t, 2, *added.MaxQuantity)
	assert.Contains(t, rec.Body.String(), "Lastbalanserare")
}

func TestHandleServiceAdd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing name", url.Values{"price": {"10"}, "category": {"web"}}},
		{"zero price", url.Values{"name": {"X"}, "price": {"0"}, "category": {"web"}}},
		{"bad max", url.Values{"name": {"X"}, "price": {"10"}, "category": {"web"}, "maxQuantity": {"två"}}},
		{"missing category", url.Values{"name": {"X"}, "price": {"10"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _ := newTestDeps(t)
			deps.Session.BeginEdit()

			rec := serve(t, HandleServiceAdd(deps), newFormRequest(http.MethodPost, "/services", "", tt.form))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Len(t, deps.Session.View().Items, 21)
		})
	}
}

func TestHandleServiceDelete(t *testing.T) {
	deps, _ := newTestDeps(t)
	require.NoError(t, deps.Session.SetQuantity("mssql", 2))
	deps.Session.BeginEdit()

	rec := serve(t, HandleServiceDelete(deps), newFormRequest(http.MethodDelete, "/services/mssql", "mssql", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, deps.Session.View().Items, 20)
	assert.True(t, deps.Session.Totals().GrandTotal.IsZero())
}

func TestHandleServiceDelete_ViewingRejected(t *testing.T) {
	deps, _ := newTestDeps(t)

	rec := serve(t, HandleServiceDelete(deps), newFormRequest(http.MethodDelete, "/services/mssql", "mssql", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, deps.Session.View().Items, 21)
}

func TestHandleTotals(t *testing.T) {
	deps, _ := newTestDeps(t)
	require.NoError(t, deps.Session.SetQuantity("mssql", 2))
	require.NoError(t, deps.Session.SetQuantity("postgresql", 1))

	rec := serve(t, HandleTotals(deps), httptest.NewRequest(http.MethodGet, "/api/totals", nil))

	var got totalsJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "viewing", got.Mode)
	assert.Equal(t, 16000.0, got.GrandTotal)
	assert.Equal(t, "16 000 kr", got.Formatted)
	assert.Len(t, got.Categories, 6)
}

func TestEditFlow_RecordStore(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	deps := &Deps{Session: testhelpers.NewTestSession(t, app)}

	deps.Session.BeginEdit()
	rec := serve(t, HandlePriceSet(deps), newFormRequest(http.MethodPost, "/prices/mariadb", "mariadb", url.Values{"price": {"0"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	serve(t, HandleEditEnd(deps), newFormRequest(http.MethodPost, "/edit/end", "", nil))

	restored := testhelpers.NewTestSession(t, app)
	price, ok := restored.Price("mariadb")
	assert.True(t, ok)
	assert.Zero(t, price)
}
