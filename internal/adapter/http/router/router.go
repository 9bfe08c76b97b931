package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/adapter/http/handler"
	"github.com/pazarlio/marketplace/internal/adapter/http/middleware"
	userdomain "github.com/pazarlio/marketplace/internal/user/domain"
)

// New assembles the full route table. Promotion feed and read routes are
// public, every mutation and identity-dependent route goes through the
// auth gate.
func New(lh *handler.ListingHandler, uh *handler.UserHandler, users userdomain.UserRepository, jwtSecret string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))

	auth := middleware.Auth(jwtSecret, users, logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/listings", func(r chi.Router) {
		r.Get("/featured", lh.Featured)
		r.Get("/discover", lh.Discover)
		r.Get("/spotlight", lh.Spotlight)
		r.Get("/", lh.ListActive)
		r.Get("/{id}", lh.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", lh.Create)
			r.Patch("/{id}", lh.Update)
			r.Delete("/{id}", lh.Delete)
			r.Post("/{id}/promote", lh.Promote)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", uh.Register)
		r.Post("/login", uh.Login)
		r.Post("/login-phone", uh.LoginByPhone)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/me", uh.Me)
			r.Get("/me/listings", uh.MyListings)
			r.Post("/favorites/{listingId}", uh.ToggleFavorite)
			r.Get("/favorites", uh.Favorites)
		})
	})

	return r
}
