package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetLogger_NotInContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	log := GetLogger(req, fallback)
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected fallback logger to be used, got %q", buf.String())
	}
}

func TestRequestLogMiddleware_AttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Level(zerolog.DebugLevel)

	req := httptest.NewRequest(http.MethodPost, "/quantities/placement", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(nil, req, rec)

	if err := RequestLogMiddleware(base)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	l := GetLogger(e.Request, zerolog.Nop())
	l.Info().Msg("inside")
	out := buf.String()
	for _, want := range []string{`"method":"POST"`, `"path":"/quantities/placement"`, `"message":"request"`, `"message":"inside"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
