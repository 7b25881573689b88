package coursedomain

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// ErrInvalidEdit is returned for an edit that cannot be applied.
var ErrInvalidEdit = errors.New("invalid layout edit")

// PointKind selects what a layout edit places.
type PointKind string

const (
	PointTee    PointKind = "tee"
	PointBasket PointKind = "basket"
)

// Edit places a tee or a basket on a hole at a GPS reading.
type Edit struct {
	Hole     int       `json:"hole"`
	Point    PointKind `json:"point"`
	BasketID int       `json:"basket_id,omitempty"`
	Active   bool      `json:"active"`
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
}

func (e Edit) Location() geo.Point { return geo.Point{Lat: e.Lat, Lon: e.Lon} }

// Validate checks the edit independently of any layout.
func (e Edit) Validate() error {
	if e.Hole < 1 {
		return fmt.Errorf("%w: hole must be 1 or greater", ErrInvalidEdit)
	}
	switch e.Point {
	case PointTee:
	case PointBasket:
		if e.BasketID < 1 {
			return fmt.Errorf("%w: basket id must be 1 or greater", ErrInvalidEdit)
		}
	default:
		return fmt.Errorf("%w: unknown point %q", ErrInvalidEdit, e.Point)
	}
	if !geo.Usable(&geo.Point{Lat: e.Lat, Lon: e.Lon}) {
		return fmt.Errorf("%w: a GPS reading is required", ErrInvalidEdit)
	}
	return nil
}

// ApplyEdit returns a copy of l with the edit applied. Tees and baskets are
// upserted by hole number and (hole, basket id), so applying the same edit
// twice yields the same layout.
func ApplyEdit(l Layout, e Edit) (Layout, error) {
	if err := e.Validate(); err != nil {
		return l, err
	}

	out := l.Clone()
	loc := e.Location()

	idx := -1
	for i := range out.Holes {
		if out.Holes[i].Number == e.Hole {
			idx = i
			break
		}
	}

	switch e.Point {
	case PointTee:
		if idx >= 0 {
			out.Holes[idx].Tee = &loc
		} else {
			out.Holes = append(out.Holes, Hole{Number: e.Hole, Tee: &loc, Baskets: []Basket{}})
		}

	case PointBasket:
		basket := Basket{ID: e.BasketID, Lat: loc.Lat, Lon: loc.Lon, Active: e.Active}
		if idx < 0 {
			out.Holes = append(out.Holes, Hole{Number: e.Hole, Baskets: []Basket{basket}})
			break
		}
		hole := &out.Holes[idx]
		updated := false
		for i := range hole.Baskets {
			if hole.Baskets[i].ID == e.BasketID {
				hole.Baskets[i] = basket
				updated = true
				break
			}
		}
		if !updated {
			hole.Baskets = append(hole.Baskets, basket)
		}
	}

	out.sortHoles()
	return out, nil
}
