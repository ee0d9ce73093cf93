package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"driftcalc/services"
	"driftcalc/templates"
)

// Deps is what the calculator handlers share.
type Deps struct {
	Session  *services.Session
	ShareURL string
	Log      zerolog.Logger
}

// render writes the calculator: the swappable fragment for HTMX requests,
// the full page otherwise.
func render(e *core.RequestEvent, deps *Deps) error {
	return renderStatus(e, deps, http.StatusOK, "")
}

// renderStatus is render with an explicit status and a notice above the
// categories.
func renderStatus(e *core.RequestEvent, deps *Deps, status int, notice string) error {
	data := templates.CalculatorData{View: deps.Session.View(), Notice: notice}
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.CalculatorContent(data)
	} else {
		component = templates.CalculatorPage(data)
	}
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	e.Response.WriteHeader(status)
	return component.Render(e.Request.Context(), e.Response)
}

// HandleCalculator renders the calculator page.
func HandleCalculator(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return render(e, deps)
	}
}

// HandleQuantitySet sets the quantity of one service from the "quantity"
// form value. An empty value clears the quantity.
func HandleQuantitySet(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		raw := strings.TrimSpace(e.Request.FormValue("quantity"))
		qty := 0
		if raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return reject(e, deps, &services.ValidationError{Field: "quantity", Message: "Antal måste vara ett heltal"})
			}
			qty = n
		}

		if err := deps.Session.SetQuantity(id, qty); err != nil {
			return reject(e, deps, err)
		}
		return render(e, deps)
	}
}

// HandleQuantitiesReset clears every quantity.
func HandleQuantitiesReset(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		deps.Session.ResetQuantities()
		SetToast(e, "info", "Alla antal nollställda")
		return render(e, deps)
	}
}

// HandleEditBegin switches the session to editing mode.
func HandleEditBegin(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		deps.Session.BeginEdit()
		return render(e, deps)
	}
}

// HandleEditEnd leaves editing mode and persists the catalog and prices.
// A failed save is reported but the session stays usable.
func HandleEditEnd(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		log := GetLogger(e.Request, deps.Log)
		if err := deps.Session.EndEdit(); err != nil {
			log.Warn().Err(err).Msg("saving prices failed")
			SetToast(e, "warning", "Priserna kunde inte sparas")
			return render(e, deps)
		}
		SetToast(e, "success", "Priser sparade")
		return render(e, deps)
	}
}

// HandlePriceSet overrides the price of one service from the "price" form
// value. Requires editing mode.
func HandlePriceSet(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		price, err := strconv.ParseFloat(strings.TrimSpace(e.Request.FormValue("price")), 64)
		if err != nil {
			return reject(e, deps, &services.ValidationError{Field: "price", Message: "Pris måste vara ett tal"})
		}
		if err := deps.Session.SetPrice(id, price); err != nil {
			return reject(e, deps, err)
		}
		return render(e, deps)
	}
}

// HandleServiceAdd adds a custom service to the working catalog.
func HandleServiceAdd(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		log := GetLogger(e.Request, deps.Log)

		in := services.NewItem{
			Name:        e.Request.FormValue("name"),
			Description: e.Request.FormValue("description"),
			Unit:        e.Request.FormValue("unit"),
			Category:    e.Request.FormValue("category"),
		}

		rawPrice := strings.TrimSpace(e.Request.FormValue("price"))
		if rawPrice != "" {
			price, err := strconv.ParseFloat(rawPrice, 64)
			if err != nil {
				return reject(e, deps, &services.ValidationError{Field: "price", Message: "Pris måste vara ett tal"})
			}
			in.Price = price
		}

		if rawMax := strings.TrimSpace(e.Request.FormValue("maxQuantity")); rawMax != "" {
			maxQty, err := strconv.Atoi(rawMax)
			if err != nil {
				return reject(e, deps, &services.ValidationError{Field: "maxquantity", Message: "Max antal måste vara ett heltal"})
			}
			in.MaxQuantity = &maxQty
		}

		item, err := deps.Session.AddItem(in)
		if err != nil {
			return reject(e, deps, err)
		}
		log.Info().Str("id", item.ID).Str("category", item.Category).Msg("service added")
		SetToast(e, "success", item.Name+" tillagd")
		return render(e, deps)
	}
}

// HandleServiceDelete removes a service from the working catalog.
func HandleServiceDelete(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := deps.Session.DeleteItem(e.Request.PathValue("id")); err != nil {
			return reject(e, deps, err)
		}
		return render(e, deps)
	}
}

type categoryTotalJSON struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}

type totalsJSON struct {
	Mode       string              `json:"mode"`
	Categories []categoryTotalJSON `json:"categories"`
	GrandTotal float64             `json:"grandTotal"`
	Formatted  string              `json:"formatted"`
}

// HandleTotals returns the current category and grand totals as JSON.
func HandleTotals(deps *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		view := deps.Session.View()
		out := totalsJSON{
			Mode:       view.Mode.String(),
			Categories: make([]categoryTotalJSON, 0, len(view.Totals.Categories)),
			GrandTotal: view.Totals.GrandTotal.InexactFloat64(),
			Formatted:  services.FormatSEK(view.Totals.GrandTotal),
		}
		for _, ct := range view.Totals.Categories {
			out.Categories = append(out.Categories, categoryTotalJSON{
				Key:       ct.Category.Key,
				Label:     ct.Category.Label,
				Total:     ct.Total.InexactFloat64(),
				Formatted: services.FormatSEK(ct.Total),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}
