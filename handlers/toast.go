package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"

	"driftcalc/services"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
// It also sets a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		// A non-JSON value is overwritten.
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = payload

	if data, err := json.Marshal(trigger); err == nil {
		e.Response.Header().Set("HX-Trigger", string(data))
	}

	if cookieVal, err := json.Marshal(payload); err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// It sets HX-Reswap: none so the response body is ignored by HTMX, while the HX-Trigger
// header still fires the toast event.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// reject answers a refused write. Unknown services get a 404 toast. Other
// validation errors re-render the calculator with the reason as a notice,
// status 422 and HX-Reswap: outerHTML. Anything else is logged as a 500.
func reject(e *core.RequestEvent, deps *Deps, err error) error {
	msg := userMessage(deps.Session, e.Request.PathValue("id"), err)
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnknownItem):
		return ErrorToast(e, http.StatusNotFound, msg)
	case errors.As(err, &ve):
		SetToast(e, "error", msg)
		e.Response.Header().Set("HX-Reswap", "outerHTML")
		return renderStatus(e, deps, http.StatusUnprocessableEntity, msg)
	}
	log := GetLogger(e.Request, deps.Log)
	log.Error().Err(err).Str("path", e.Request.URL.Path).Msg("request failed")
	return ErrorToast(e, http.StatusInternalServerError, "Internt fel")
}

// userMessage turns a session error into the text shown to the user. id is
// the service the request targeted, if any.
func userMessage(session *services.Session, id string, err error) string {
	var ve *services.ValidationError
	if !errors.As(err, &ve) {
		return "Internt fel"
	}
	switch {
	case errors.Is(err, services.ErrUnknownItem):
		return "Tjänsten finns inte längre"
	case errors.Is(err, services.ErrNegativeQuantity):
		return "Antal kan inte vara negativt"
	case errors.Is(err, services.ErrQuantityAboveMax):
		return quantityAboveMaxMessage(session, id)
	case errors.Is(err, services.ErrNegativePrice):
		return "Priset kan inte vara negativt"
	case errors.Is(err, services.ErrNotEditing):
		return "Aktivera redigering av priser först"
	case errors.Is(err, services.ErrInvalidItem):
		switch ve.Field {
		case "name":
			return "Ange ett namn på tjänsten"
		case "price":
			return "Priset måste vara större än 0"
		case "category":
			return "Ange en kategori"
		case "maxquantity":
			return "Max antal kan inte vara negativt"
		}
		return "Tjänsten kunde inte läggas till"
	case ve.Err == nil:
		return ve.Message
	}
	return "Ogiltigt värde"
}

func quantityAboveMaxMessage(session *services.Session, id string) string {
	if session != nil {
		if item, ok := session.Item(id); ok && item.HasMax() {
			return fmt.Sprintf("Högst %d för %s", *item.MaxQuantity, item.Name)
		}
	}
	return "Antalet är för högt"
}
