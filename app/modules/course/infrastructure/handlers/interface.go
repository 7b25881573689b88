package coursehandlers

import "net/http"

// Handlers serves the /api/courses routes.
type Handlers interface {
	HandleListCourses(w http.ResponseWriter, r *http.Request)
	HandleSaveCourse(w http.ResponseWriter, r *http.Request)
	HandleGetCourse(w http.ResponseWriter, r *http.Request)
	HandleMap(w http.ResponseWriter, r *http.Request)
	HandleEditLayout(w http.ResponseWriter, r *http.Request)
}
