package rounddomain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// ThrowLogVersion is the current stored throw log format.
const ThrowLogVersion = 1

var (
	// ErrMalformedThrowLog is returned when a stored throw log cannot be decoded.
	ErrMalformedThrowLog = errors.New("malformed throw log")

	// ErrUnsupportedThrowLogVersion is returned for an unknown document version.
	ErrUnsupportedThrowLogVersion = errors.New("unsupported throw log version")
)

// Throw is a single GPS-measured throw.
type Throw struct {
	StartLat float64 `json:"start_lat"`
	StartLon float64 `json:"start_lon"`
	EndLat   float64 `json:"end_lat"`
	EndLon   float64 `json:"end_lon"`
	Distance float64 `json:"distance"`
}

// NewThrow measures the throw from start to end.
func NewThrow(start, end geo.Point) Throw {
	return Throw{
		StartLat: start.Lat,
		StartLon: start.Lon,
		EndLat:   end.Lat,
		EndLon:   end.Lon,
		Distance: geo.DistanceFeet(start, end),
	}
}

func (t Throw) Start() geo.Point { return geo.Point{Lat: t.StartLat, Lon: t.StartLon} }

func (t Throw) End() geo.Point { return geo.Point{Lat: t.EndLat, Lon: t.EndLon} }

// Holes is a round's throws; the hole number is the index plus one.
type Holes [][]Throw

// Distances flattens every throw distance in hole order.
func (h Holes) Distances() []float64 {
	var out []float64
	for _, hole := range h {
		for _, t := range hole {
			out = append(out, t.Distance)
		}
	}
	return out
}

// ThrowCount returns the number of throws across all holes.
func (h Holes) ThrowCount() int {
	n := 0
	for _, hole := range h {
		n += len(hole)
	}
	return n
}

// Clone returns a deep copy.
func (h Holes) Clone() Holes {
	out := make(Holes, len(h))
	for i, hole := range h {
		out[i] = append([]Throw(nil), hole...)
	}
	return out
}

type throwLogDocument struct {
	Version int       `json:"version"`
	Holes   [][]Throw `json:"holes"`
}

// EncodeThrowLog serializes holes as a versioned JSON document.
func EncodeThrowLog(holes Holes) (string, error) {
	doc := throwLogDocument{Version: ThrowLogVersion, Holes: make([][]Throw, len(holes))}
	for i, hole := range holes {
		if hole == nil {
			hole = []Throw{}
		}
		doc.Holes[i] = hole
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode throw log: %w", err)
	}
	return string(b), nil
}

// DecodeThrowLog parses a stored throw log, rejecting unknown versions,
// missing hole lists and negative or non-finite distances.
func DecodeThrowLog(data string) (Holes, error) {
	var doc struct {
		Version int        `json:"version"`
		Holes   *[][]Throw `json:"holes"`
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedThrowLog, err)
	}
	if doc.Version != ThrowLogVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedThrowLogVersion, doc.Version)
	}
	if doc.Holes == nil {
		return nil, fmt.Errorf("%w: missing holes", ErrMalformedThrowLog)
	}

	holes := Holes(*doc.Holes)
	for i, hole := range holes {
		for j, t := range hole {
			if t.Distance < 0 || math.IsNaN(t.Distance) || math.IsInf(t.Distance, 0) {
				return nil, fmt.Errorf("%w: hole %d throw %d has distance %v", ErrMalformedThrowLog, i+1, j+1, t.Distance)
			}
		}
		if hole == nil {
			holes[i] = []Throw{}
		}
	}
	return holes, nil
}
