// internal/app/features/notices/routes.go
package notices

import "github.com/go-chi/chi/v5"

func Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", HandleList)
	return r
}
