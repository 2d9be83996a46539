package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"mydocs/internal/auth"
	"mydocs/internal/database"
	"mydocs/internal/service"
)

// Dependencies are the collaborators the HTTP routes are wired to.
type Dependencies struct {
	DB            database.Pinger
	Documents     service.DocumentService
	Types         service.TypeService
	Verifier      auth.Verifier
	Metrics       http.Handler
	MaxUploadSize int64
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything under /api/docs requires a bearer token.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics))
	}

	api := app.Group("/api/docs", auth.RequireAuth(d.Verifier))

	docs := api.Group("/my-docs")
	docs.Get("/", ListDocuments(d.Documents))
	docs.Post("/", CreateDocument(d.Documents, d.MaxUploadSize))
	docs.Get("/:id", GetDocument(d.Documents))
	docs.Put("/:id", UpdateDocument(d.Documents))
	docs.Delete("/:id", DeleteDocument(d.Documents))
	docs.Get("/:id/file", DownloadDocument(d.Documents))

	types := api.Group("/types")
	types.Get("/", ListTypes(d.Types))
	types.Post("/", CreateType(d.Types))
	types.Get("/:id", GetType(d.Types))
	types.Put("/:id", UpdateType(d.Types))
	types.Delete("/:id", DeleteType(d.Types))
}
