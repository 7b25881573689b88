// Package pagesdomain defines the fixed set of views the client can show and
// what each one needs before it can render.
package pagesdomain

import "strings"

// Page identifies one view of the application.
type Page string

const (
	PageMap          Page = "map"
	PageSubmitReview Page = "submit-review"
	PageReviews      Page = "reviews"
	PageTrackRound   Page = "track-round"
	PageAnalytics    Page = "analytics"
	PageLostDisc     Page = "lost-disc"
)

// LocationNeed describes how a page uses a GPS reading.
type LocationNeed string

const (
	LocationNone     LocationNeed = "none"
	LocationOptional LocationNeed = "optional"
	LocationRequired LocationNeed = "required"
)

// Requirements are what a page needs from the caller.
type Requirements struct {
	Location LocationNeed `json:"location"`
	// Developer marks pages whose editing controls need the developer role.
	Developer bool `json:"developer"`
}

// Definition describes a page in navigation order.
type Definition struct {
	Page     Page         `json:"page"`
	Title    string       `json:"title"`
	Requires Requirements `json:"requires"`
}

var definitions = []Definition{
	{Page: PageMap, Title: "Map Courses", Requires: Requirements{Location: LocationOptional, Developer: true}},
	{Page: PageSubmitReview, Title: "Submit Review", Requires: Requirements{Location: LocationOptional}},
	{Page: PageReviews, Title: "View Reviews", Requires: Requirements{Location: LocationNone}},
	{Page: PageTrackRound, Title: "Track Round", Requires: Requirements{Location: LocationRequired}},
	{Page: PageAnalytics, Title: "Analytics", Requires: Requirements{Location: LocationNone}},
	{Page: PageLostDisc, Title: "Lost Disc Helper", Requires: Requirements{Location: LocationRequired}},
}

// Definitions returns every page in navigation order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Parse resolves a page name, ignoring case and surrounding space.
func Parse(s string) (Page, bool) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range definitions {
		if d.Page == p {
			return p, true
		}
	}
	return "", false
}

// Lookup returns the definition of p.
func Lookup(p Page) (Definition, bool) {
	for _, d := range definitions {
		if d.Page == p {
			return d, true
		}
	}
	return Definition{}, false
}
