package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_JSONIncludesService(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "driftcalc", Level: ParseLevel("debug"), Output: buf})

	log.Debug().Str("item", "placement").Msg("quantity set")

	for _, want := range []string{`"service":"driftcalc"`, `"item":"placement"`, `"level":"debug"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("entry missing %s; entry=%s", want, buf.String())
		}
	}
}

func TestNew_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "driftcalc", Level: zerolog.WarnLevel, Output: buf})

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %s", buf.String())
	}
	log.Warn().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("warn entry missing: %s", buf.String())
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "driftcalc", Format: "console", Output: buf})

	log.Info().Msg("started")
	if bytes.HasPrefix(buf.Bytes(), []byte("{")) {
		t.Fatalf("console format wrote JSON: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("started")) {
		t.Fatalf("message missing: %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
		{" WARN ", zerolog.WarnLevel},
		{"debug", zerolog.DebugLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
