package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.Config.CorsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	admin := middlewares.Admin(app.Guard)

	api.Route("/form", func(r chi.Router) {
		r.Get("/primary", GetPrimaryForm(app))
		r.Get("/", GetFormConfig(app))
		r.Post("/initialize", InitializeForm(app))

		r.Group(func(r chi.Router) {
			r.Use(admin)

			r.Get("/all", ListForms(app))
			r.Post("/new", CreateForm(app))
			r.Put("/", SaveFormConfig(app))
			r.Get("/{id}", GetFormById(app))
			r.Get("/{id}/analytics", FormAnalytics(app))
			r.Put("/{id}", UpdateForm(app))
			r.Put("/{id}/set-primary", SetPrimaryForm(app))
			r.Put("/{id}/archive", ArchiveForm(app))
			r.Delete("/{id}", DeleteForm(app))
		})
	})

	api.Route("/responses", func(r chi.Router) {
		r.Post("/", SubmitResponse(app))

		r.Group(func(r chi.Router) {
			r.Use(admin)

			r.Get("/", ListResponses(app))
			r.Get("/{id}", GetResponseById(app))
			r.Delete("/{id}", DeleteResponse(app))
		})
	})

	api.Route("/admin", func(r chi.Router) {
		r.Post("/login", Login(app))
		r.Post("/logout", Logout(app))
		r.With(admin).Get("/verify", VerifySession(app))
	})

	api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{
			"status":  "ok",
			"message": "Server is running",
		})
	})

	return api
}
