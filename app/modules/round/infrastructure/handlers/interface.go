package roundhandlers

import "net/http"

// Handlers serves the /api/rounds routes.
type Handlers interface {
	HandleGetSession(w http.ResponseWriter, r *http.Request)
	HandleStartHole(w http.ResponseWriter, r *http.Request)
	HandleMarkStart(w http.ResponseWriter, r *http.Request)
	HandleMarkLanding(w http.ResponseWriter, r *http.Request)
	HandleFinish(w http.ResponseWriter, r *http.Request)
	HandleListRounds(w http.ResponseWriter, r *http.Request)
	HandleExportRounds(w http.ResponseWriter, r *http.Request)
}
