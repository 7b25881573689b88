package pageshandlers

import "net/http"

// Handlers serves the /api/pages routes.
type Handlers interface {
	HandleListPages(w http.ResponseWriter, r *http.Request)
	HandleGetPage(w http.ResponseWriter, r *http.Request)
}
