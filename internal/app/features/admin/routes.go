// internal/app/features/admin/routes.go
package admin

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /api/admin. Login and logout
// are open; everything else requires an admin session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAdmin)

		r.Get("/teams", h.HandleList)
		r.Get("/teams/{id}", h.HandleGet)
		r.Put("/teams/{id}", h.HandleUpdate)
		r.Delete("/teams/{id}", h.HandleDelete)

		r.Put("/payment/{id}", h.HandlePayment)
		r.Patch("/payment/{id}", h.HandlePayment)
	})

	return r
}
