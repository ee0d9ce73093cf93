package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"

	"driftcalc/services"
)

// maxStatePayload bounds the persisted session record, well above what a
// few hundred custom services need.
const maxStatePayload = 1 << 20

// Setup programmatically creates/ensures the session_state collection
// exists. It is safe to call on every startup.
func Setup(app *pocketbase.PocketBase, log zerolog.Logger) error {
	_, err := ensureCollection(app, log, services.SessionStateCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "payload", Max: maxStatePayload})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_session_state_key", true, "key", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, log zerolog.Logger, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Debug().Str("collection", name).Msg("collection already exists, skipping creation")
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Info().Str("collection", name).Str("id", collection.Id).Msg("created collection")
	return collection, nil
}
