package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middlewares.RequestLogger,
		middleware.Recoverer,
		middlewares.CORS(app.CORSOrigins),
	)

	root.Get("/healthz", Health(app))
	root.With(middlewares.NoCache).Mount("/api", apiRouter(app))

	if app.PublicDir != "" {
		root.Mount("/", servePublicFiles(app.PublicDir))
	}

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Route("/forms", func(r chi.Router) {
		// CRUD form
		r.Get("/", ListForms(app))
		r.Post("/", CreateForm(app))
		r.Get("/{id}", GetFormById(app))
		r.Put("/{id}", UpdateForm(app))
		r.Delete("/{id}", DeleteForm(app))
		r.Get("/{id}/table", GetFormTable(app))

		// CRUD response
		r.Get("/{id}/responses", ListFormResponses(app))
		r.Post("/{id}/responses", SubmitResponse(app))
		r.Put("/{id}/responses/{responseId}", UpdateResponse(app))
		r.Delete("/{id}/responses/{responseId}", DeleteResponse(app))
	})

	return api
}

func servePublicFiles(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
