package placeshandlers

import "net/http"

// Handlers serves the /api/places routes.
type Handlers interface {
	HandleNearby(w http.ResponseWriter, r *http.Request)
	HandleRetailers(w http.ResponseWriter, r *http.Request)
}
