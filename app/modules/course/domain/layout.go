package coursedomain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// LayoutVersion is the current stored layout format.
const LayoutVersion = 1

var (
	// ErrMalformedLayout is returned when a stored layout cannot be decoded.
	ErrMalformedLayout = errors.New("malformed layout")

	// ErrUnsupportedLayoutVersion is returned for an unknown document version.
	ErrUnsupportedLayoutVersion = errors.New("unsupported layout version")
)

// Basket is a pin position on a hole. Inactive baskets are drawn but not scored.
type Basket struct {
	ID     int     `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Active bool    `json:"active"`
}

func (b Basket) Point() geo.Point { return geo.Point{Lat: b.Lat, Lon: b.Lon} }

// Hole is a tee pad and its baskets.
type Hole struct {
	Number  int        `json:"hole"`
	Tee     *geo.Point `json:"tee"`
	Baskets []Basket   `json:"baskets"`
}

// Layout is a course's holes, sorted by hole number.
type Layout struct {
	Holes []Hole `json:"holes"`
}

// Hole returns the hole numbered n.
func (l Layout) Hole(n int) (Hole, bool) {
	for _, h := range l.Holes {
		if h.Number == n {
			return h, true
		}
	}
	return Hole{}, false
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	out := Layout{Holes: make([]Hole, len(l.Holes))}
	for i, h := range l.Holes {
		c := Hole{Number: h.Number, Baskets: append([]Basket{}, h.Baskets...)}
		if h.Tee != nil {
			tee := *h.Tee
			c.Tee = &tee
		}
		out.Holes[i] = c
	}
	return out
}

func (l *Layout) sortHoles() {
	sort.SliceStable(l.Holes, func(i, j int) bool {
		return l.Holes[i].Number < l.Holes[j].Number
	})
}

// ScoredLine is a tee-to-basket line for an active basket.
type ScoredLine struct {
	Hole       int       `json:"hole"`
	BasketID   int       `json:"basket_id"`
	Tee        geo.Point `json:"tee"`
	Basket     geo.Point `json:"basket"`
	DistanceFt float64   `json:"distance_ft"`
	Par        int       `json:"par"`
}

// ScoredLines returns one line per active basket on a hole with a tee.
// Every active basket is scored independently.
func (l Layout) ScoredLines() []ScoredLine {
	lines := []ScoredLine{}
	for _, h := range l.Holes {
		if h.Tee == nil {
			continue
		}
		for _, b := range h.Baskets {
			if !b.Active {
				continue
			}
			d := geo.DistanceFeet(*h.Tee, b.Point())
			lines = append(lines, ScoredLine{
				Hole:       h.Number,
				BasketID:   b.ID,
				Tee:        *h.Tee,
				Basket:     b.Point(),
				DistanceFt: d,
				Par:        geo.Par(d),
			})
		}
	}
	return lines
}

// Validate checks structural invariants: positive unique hole numbers,
// positive basket ids unique within a hole, coordinates in range.
func (l Layout) Validate() error {
	seenHoles := make(map[int]struct{}, len(l.Holes))
	for _, h := range l.Holes {
		if h.Number < 1 {
			return fmt.Errorf("%w: hole number %d", ErrMalformedLayout, h.Number)
		}
		if _, dup := seenHoles[h.Number]; dup {
			return fmt.Errorf("%w: duplicate hole %d", ErrMalformedLayout, h.Number)
		}
		seenHoles[h.Number] = struct{}{}

		if h.Tee != nil && !h.Tee.Valid() {
			return fmt.Errorf("%w: hole %d tee out of range", ErrMalformedLayout, h.Number)
		}

		seenBaskets := make(map[int]struct{}, len(h.Baskets))
		for _, b := range h.Baskets {
			if b.ID < 1 {
				return fmt.Errorf("%w: hole %d basket id %d", ErrMalformedLayout, h.Number, b.ID)
			}
			if _, dup := seenBaskets[b.ID]; dup {
				return fmt.Errorf("%w: hole %d duplicate basket %d", ErrMalformedLayout, h.Number, b.ID)
			}
			seenBaskets[b.ID] = struct{}{}
			if !b.Point().Valid() {
				return fmt.Errorf("%w: hole %d basket %d out of range", ErrMalformedLayout, h.Number, b.ID)
			}
		}
	}
	return nil
}

type layoutDocument struct {
	Version int    `json:"version"`
	Holes   []Hole `json:"holes"`
}

// EncodeLayout serializes l as a versioned JSON document.
func EncodeLayout(l Layout) (string, error) {
	doc := layoutDocument{Version: LayoutVersion, Holes: make([]Hole, len(l.Holes))}
	for i, h := range l.Holes {
		if h.Baskets == nil {
			h.Baskets = []Basket{}
		}
		doc.Holes[i] = h
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode layout: %w", err)
	}
	return string(b), nil
}

// DecodeLayout parses and validates a stored layout document.
func DecodeLayout(data string) (Layout, error) {
	var doc struct {
		Version int     `json:"version"`
		Holes   *[]Hole `json:"holes"`
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrMalformedLayout, err)
	}
	if doc.Version != LayoutVersion {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnsupportedLayoutVersion, doc.Version)
	}
	if doc.Holes == nil {
		return Layout{}, fmt.Errorf("%w: missing holes", ErrMalformedLayout)
	}

	l := Layout{Holes: *doc.Holes}
	for i := range l.Holes {
		if l.Holes[i].Baskets == nil {
			l.Holes[i].Baskets = []Basket{}
		}
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	l.sortHoles()
	return l, nil
}

// EmptyLayoutDocument is the stored form of a layout with no holes.
func EmptyLayoutDocument() string {
	s, _ := EncodeLayout(Layout{})
	return s
}
