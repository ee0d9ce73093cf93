// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/rs/zerolog"

	"driftcalc/collections"
	"driftcalc/services"
)

// TestStorageKey is the storage key used by test sessions.
const TestStorageKey = "cost-estimator-prices-test"

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app, zerolog.Nop()); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// NewTestSession returns a session over the default catalog persisted in
// app's session_state collection.
func NewTestSession(t *testing.T, app *pocketbase.PocketBase) *services.Session {
	t.Helper()
	return services.NewSession(
		services.DefaultCatalog(),
		services.NewRecordStateStore(app),
		TestStorageKey,
		zerolog.Nop(),
	)
}
