package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/collections"
	"tradeops/config"
	"tradeops/handlers"
	"tradeops/logging"
	"tradeops/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config: load failed", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(cfg.Log.Level)

	rates, err := cfg.Pricing.Rates()
	if err != nil {
		slog.Error("config: invalid reference rates", "error", err)
		os.Exit(1)
	}
	settings := handlers.Settings{
		Rates:           rates,
		Company:         cfg.Company.Export(),
		DefaultCurrency: cfg.Pricing.Currency(),
	}

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: cfg.App.DataDir,
		DefaultDev:     cfg.IsDevelopment(),
	})

	app.RootCmd.AddCommand(newRecalcCommand(app, rates))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.IsDevelopment() {
			if err := collections.Seed(app, rates); err != nil {
				slog.Warn("seed data failed", "error", err)
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		se.Router.BindFunc(handlers.RequestLogger())

		se.Router.GET("/metrics", apis.WrapStdHandler(services.MetricsHandler()))

		// ── Document API ─────────────────────────────────────────
		se.Router.GET("/api/documents", handlers.HandleDocumentList(app))
		se.Router.POST("/api/documents", handlers.HandleDocumentCreate(app, settings))

		doc := se.Router.Group("/api/documents/{id}")
		doc.BindFunc(handlers.DocumentMiddleware(app))
		doc.GET("", handlers.HandleDocumentGet(app))
		doc.PATCH("", handlers.HandleDocumentUpdate(app, settings))
		doc.DELETE("", handlers.HandleDocumentDelete(app))
		doc.POST("/calculate", handlers.HandleDocumentCalculate(app, settings))

		// Rows
		doc.POST("/items", handlers.HandleRowInsert(app, settings))
		doc.PATCH("/items/{rowId}", handlers.HandleRowUpdate(app, settings))
		doc.DELETE("/items/{rowId}", handlers.HandleRowDelete(app, settings))
		doc.POST("/items/{rowId}/move", handlers.HandleRowMove(app, settings))

		// Discount and charges
		doc.PATCH("/discount", handlers.HandleDiscountUpdate(app, settings))
		doc.POST("/charges", handlers.HandleChargeAdd(app, settings))
		doc.PATCH("/charges/{chargeId}", handlers.HandleChargeUpdate(app, settings))
		doc.DELETE("/charges/{chargeId}", handlers.HandleChargeDelete(app, settings))

		// ── Pages and exports ────────────────────────────────────
		se.Router.GET("/documents", handlers.HandleDocumentListPage(app))
		pages := se.Router.Group("/documents/{id}")
		pages.BindFunc(handlers.DocumentMiddleware(app))
		pages.GET("", handlers.HandleDocumentView(app, settings))
		pages.GET("/export/pdf", handlers.HandleDocumentExportPDF(app, settings))
		pages.GET("/export/excel", handlers.HandleDocumentExportExcel(app, settings))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/documents")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		slog.Error("app: stopped", "error", err)
		os.Exit(1)
	}
}
