// internal/app/features/team/routes.go
package team

import (
	"github.com/go-chi/chi/v5"

	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
)

// Routes returns the subrouter mounted at /api/team. The caller wires the
// token middleware; RequireLeader rejects requests it did not authenticate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireLeader)
	r.Get("/", h.HandleGetOwn)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	return r
}
