package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"driftcalc/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	if app != nil {
		e.App = app
	}
	e.Request = req
	e.Response = rec
	return e
}

// newTestDeps returns handler dependencies over an in-memory session.
func newTestDeps(t *testing.T) (*Deps, *services.MemoryStateStore) {
	t.Helper()
	store := services.NewMemoryStateStore()
	return &Deps{
		Session:  services.NewSession(services.DefaultCatalog(), store, "test", zerolog.Nop()),
		ShareURL: "http://127.0.0.1:8090/",
		Log:      zerolog.Nop(),
	}, store
}

// newFormRequest builds a form POST with an optional {id} path value.
func newFormRequest(method, target, id string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}
