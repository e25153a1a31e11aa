package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/devconnect/api/internal/api/handlers"
	mw "github.com/devconnect/api/internal/api/middleware"
	"github.com/devconnect/api/internal/token"
)

type Dependencies struct {
	Verifier       token.Verifier
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	auth := mw.Auth(dep.Verifier)

	r.Route("/api", func(api chi.Router) {
		api.Post("/users", dep.AuthHandler.Register)

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/", dep.AuthHandler.Login)
			ar.With(auth).Get("/", dep.AuthHandler.Current)
		})

		api.Route("/profile", func(pr chi.Router) {
			// Public reads
			pr.Get("/", dep.ProfileHandler.List)
			pr.Get("/user/{user_id}", dep.ProfileHandler.GetByUser)
			pr.Get("/github/{username}", dep.ProfileHandler.Github)

			// Caller's own profile
			pr.Group(func(own chi.Router) {
				own.Use(auth)
				own.Get("/me", dep.ProfileHandler.Me)
				own.Post("/", dep.ProfileHandler.Upsert)
				own.Delete("/", dep.ProfileHandler.DeleteAccount)

				own.Put("/experience", dep.ProfileHandler.AddExperience)
				own.Patch("/experience/{exp_id}", dep.ProfileHandler.EditExperience)
				own.Delete("/experience/{exp_id}", dep.ProfileHandler.RemoveExperience)

				own.Put("/education", dep.ProfileHandler.AddEducation)
				own.Patch("/education/{edu_id}", dep.ProfileHandler.EditEducation)
				own.Delete("/education/{edu_id}", dep.ProfileHandler.RemoveEducation)
			})
		})
	})

	return r
}
