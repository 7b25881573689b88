// Package placesdomain holds the nearby-place filter applied to places-search
// results.
package placesdomain

import (
	"strings"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

const (
	// PerKeyword is how many results of each keyword query are considered.
	PerKeyword = 5
	// MaxResults caps the merged result list.
	MaxResults = 10

	CourseRadius   = 20000
	RetailerRadius = 10000
)

// CourseKeywords find courses near a point.
var CourseKeywords = []string{"disc golf", "frisbee golf", "disc golf course", "disc golf park"}

// RetailerKeywords find shops selling replacement discs.
var RetailerKeywords = []string{"disc golf retailer", "disc golf shop"}

var nameTerms = []string{"disc", "golf", "frisbee", "park"}

// Place is a named point returned by the places index.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (p Place) Point() geo.Point { return geo.Point{Lat: p.Lat, Lon: p.Lon} }

type placeKey struct {
	name     string
	lat, lon float64
}

// Relevant reports whether the lower-cased name mentions the sport.
func Relevant(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range nameTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Merge combines per-keyword result lists in keyword order: the first
// PerKeyword results of each list are filtered by Relevant, duplicates by
// (name, lat, lon) are dropped keeping the first, and the output is capped
// at MaxResults.
func Merge(perKeyword [][]Place) []Place {
	seen := make(map[placeKey]struct{})
	out := []Place{}
	for _, results := range perKeyword {
		if len(results) > PerKeyword {
			results = results[:PerKeyword]
		}
		for _, p := range results {
			if !Relevant(p.Name) {
				continue
			}
			k := placeKey{name: p.Name, lat: p.Lat, lon: p.Lon}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
			if len(out) == MaxResults {
				return out
			}
		}
	}
	return out
}

// Names lists place names in order.
func Names(places []Place) []string {
	names := make([]string, len(places))
	for i, p := range places {
		names[i] = p.Name
	}
	return names
}

// Retailer suggestion messages
const (
	MsgNoRetailers           = "None found, try Par 4 the Parks or local shops via UDisc."
	MsgRetailersNeedLocation = "Allow location access for retailer suggestions."
)

// RetailerMessage summarizes retailer suggestions for display.
func RetailerMessage(retailers []Place) string {
	if len(retailers) == 0 {
		return MsgNoRetailers
	}
	return "Nearby: " + strings.Join(Names(retailers), " | ")
}
