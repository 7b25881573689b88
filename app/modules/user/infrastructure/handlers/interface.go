package userhandlers

import "net/http"

// Handlers serves the /api/auth routes.
type Handlers interface {
	HandleSignup(w http.ResponseWriter, r *http.Request)
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
	HandleMe(w http.ResponseWriter, r *http.Request)
}
