package httpx

import (
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// QueryPoint reads a coordinate from two query parameters. It returns nil
// when either is missing or not a number.
func QueryPoint(r *http.Request, latKey, lonKey string) *geo.Point {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get(latKey), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(q.Get(lonKey), 64)
	if err != nil {
		return nil
	}
	return &geo.Point{Lat: lat, Lon: lon}
}

// QueryInt reads an integer query parameter, returning def when it is
// missing or invalid.
func QueryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}
