package analyticshandlers

import "net/http"

// Handlers serves the /api/analytics routes.
type Handlers interface {
	HandleSummary(w http.ResponseWriter, r *http.Request)
	HandleHistogram(w http.ResponseWriter, r *http.Request)
}
