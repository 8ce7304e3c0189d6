// internal/app/features/notices/handler.go
package notices

import (
	"net/http"

	"github.com/jwstechnologies/hackportal/internal/app/system/jsonapi"
)

// Notice is a published event document. The files themselves are served
// from the static docs mount.
type Notice struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// published is the fixed notice board for the current event.
var published = []Notice{
	{ID: "rules", Title: "Hackathon Rules & Guidelines", URL: "/docs/rules.pdf"},
	{ID: "schedule", Title: "Event Schedule", URL: "/docs/schedule.pdf"},
	{ID: "venue-map", Title: "Venue Map", URL: "/docs/venue-map.pdf"},
	{ID: "conduct", Title: "Code of Conduct", URL: "/docs/conduct.pdf"},
}

type listResponse struct {
	Notices []Notice `json:"notices"`
}

// HandleList serves GET /api/notices.
func HandleList(w http.ResponseWriter, r *http.Request) {
	jsonapi.Write(w, http.StatusOK, listResponse{Notices: published})
}
