package reviewhandlers

import "net/http"

// Handlers serves the /api/reviews and /api/lost-disc routes.
type Handlers interface {
	HandleListReviews(w http.ResponseWriter, r *http.Request)
	HandleSubmitReview(w http.ResponseWriter, r *http.Request)
	HandleExportReviews(w http.ResponseWriter, r *http.Request)
	HandleLostDisc(w http.ResponseWriter, r *http.Request)
}
