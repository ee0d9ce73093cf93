package main

import (
	"fmt"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"driftcalc/collections"
	"driftcalc/config"
	"driftcalc/handlers"
	"driftcalc/logger"
	"driftcalc/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "driftcalc",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	app := pocketbase.New()

	// Create the session_state collection and wire the calculator on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app, log); err != nil {
			return err
		}

		deps := &handlers.Deps{
			Session:  services.NewSession(services.DefaultCatalog(), services.NewRecordStateStore(app), cfg.StorageKey, log),
			ShareURL: cfg.ShareURL,
			Log:      log,
		}

		se.Router.BindFunc(handlers.RequestLogMiddleware(log))

		// ── Calculator ───────────────────────────────────────────
		se.Router.GET("/", handlers.HandleCalculator(deps))
		se.Router.GET("/api/totals", handlers.HandleTotals(deps))
		se.Router.POST("/quantities/reset", handlers.HandleQuantitiesReset(deps))
		se.Router.POST("/quantities/{id}", handlers.HandleQuantitySet(deps))

		// ── Catalog editing ──────────────────────────────────────
		se.Router.POST("/edit/begin", handlers.HandleEditBegin(deps))
		se.Router.POST("/edit/end", handlers.HandleEditEnd(deps))
		se.Router.POST("/prices/{id}", handlers.HandlePriceSet(deps))
		se.Router.POST("/services", handlers.HandleServiceAdd(deps))
		se.Router.DELETE("/services/{id}", handlers.HandleServiceDelete(deps))

		// ── Export and share ─────────────────────────────────────
		se.Router.GET("/export/excel", handlers.HandleExportExcel(deps))
		se.Router.GET("/export/pdf", handlers.HandleExportPDF(deps))
		se.Router.GET("/export/summary", handlers.HandleExportSummary(deps))
		se.Router.GET("/share", handlers.HandleShare(deps))

		return se.Next()
	})

	app.RootCmd.AddCommand(
		newQuoteCmd(app, cfg, log),
		newCatalogCmd(app, cfg, log),
	)

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("driftcalc stopped")
	}
}
