package coursedomain

import "github.com/Black-And-White-Club/chainchaser/app/shared/geo"

// ThorpeParkName is the Flagstaff course that ships pre-mapped.
const ThorpeParkName = "Thorpe Park"

// ThorpeParkLocation is the course marker position.
var ThorpeParkLocation = geo.Point{Lat: 35.205856, Lon: -111.657357}

// ThorpeParkLayout returns the seeded 18-hole layout: basket 1 active and
// basket 2 inactive on every hole.
func ThorpeParkLayout() Layout {
	const (
		baseLat = 35.2058
		baseLon = -111.6574
	)
	l := Layout{Holes: make([]Hole, 0, 18)}
	for i := 1; i <= 18; i++ {
		f := float64(i)
		tee := geo.Point{Lat: baseLat + f*0.0005, Lon: baseLon + f*0.0003}
		l.Holes = append(l.Holes, Hole{
			Number: i,
			Tee:    &tee,
			Baskets: []Basket{
				{ID: 1, Lat: baseLat + f*0.0008, Lon: baseLon + f*0.0006, Active: true},
				{ID: 2, Lat: baseLat + f*0.0012, Lon: baseLon + f*0.0009, Active: false},
			},
		})
	}
	return l
}
