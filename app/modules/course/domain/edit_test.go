package coursedomain

import (
	"testing"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, l Layout, edits ...Edit) Layout {
	t.Helper()
	for _, e := range edits {
		var err error
		l, err = ApplyEdit(l, e)
		require.NoError(t, err)
	}
	return l
}

func TestApplyEdit(t *testing.T) {
	teeEdit := Edit{Hole: 2, Point: PointTee, Lat: 35.21, Lon: -111.65}
	basketEdit := Edit{Hole: 2, Point: PointBasket, BasketID: 1, Active: true, Lat: 35.212, Lon: -111.652}

	tests := []struct {
		name   string
		start  Layout
		edits  []Edit
		verify func(t *testing.T, got Layout)
	}{
		{
			name:  "tee on a new hole appends it without baskets",
			start: Layout{},
			edits: []Edit{teeEdit},
			verify: func(t *testing.T, got Layout) {
				require.Len(t, got.Holes, 1)
				assert.Equal(t, 2, got.Holes[0].Number)
				assert.Equal(t, &geo.Point{Lat: 35.21, Lon: -111.65}, got.Holes[0].Tee)
				assert.Empty(t, got.Holes[0].Baskets)
			},
		},
		{
			name:  "basket on a new hole appends a hole without tee",
			start: Layout{},
			edits: []Edit{basketEdit},
			verify: func(t *testing.T, got Layout) {
				require.Len(t, got.Holes, 1)
				assert.Nil(t, got.Holes[0].Tee)
				assert.Equal(t, []Basket{{ID: 1, Lat: 35.212, Lon: -111.652, Active: true}}, got.Holes[0].Baskets)
			},
		},
		{
			name:  "tee then basket share the hole and score a line",
			start: Layout{},
			edits: []Edit{teeEdit, basketEdit},
			verify: func(t *testing.T, got Layout) {
				require.Len(t, got.Holes, 1)
				assert.Len(t, got.ScoredLines(), 1)
			},
		},
		{
			name:  "basket update keeps id and replaces position and active flag",
			start: Layout{},
			edits: []Edit{
				basketEdit,
				{Hole: 2, Point: PointBasket, BasketID: 1, Active: false, Lat: 35.3, Lon: -111.7},
			},
			verify: func(t *testing.T, got Layout) {
				assert.Equal(t, []Basket{{ID: 1, Lat: 35.3, Lon: -111.7, Active: false}}, got.Holes[0].Baskets)
			},
		},
		{
			name:  "second basket id appends to the hole",
			start: Layout{},
			edits: []Edit{
				basketEdit,
				{Hole: 2, Point: PointBasket, BasketID: 2, Lat: 35.3, Lon: -111.7},
			},
			verify: func(t *testing.T, got Layout) {
				require.Len(t, got.Holes[0].Baskets, 2)
				assert.Equal(t, 2, got.Holes[0].Baskets[1].ID)
			},
		},
		{
			name:  "holes stay sorted",
			start: Layout{},
			edits: []Edit{
				{Hole: 9, Point: PointTee, Lat: 35.1, Lon: -111.1},
				{Hole: 3, Point: PointTee, Lat: 35.1, Lon: -111.1},
				{Hole: 5, Point: PointBasket, BasketID: 1, Lat: 35.1, Lon: -111.1},
			},
			verify: func(t *testing.T, got Layout) {
				var numbers []int
				for _, h := range got.Holes {
					numbers = append(numbers, h.Number)
				}
				assert.Equal(t, []int{3, 5, 9}, numbers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, apply(t, tt.start, tt.edits...))
		})
	}
}

func TestApplyEdit_Idempotent(t *testing.T) {
	edits := []Edit{
		{Hole: 1, Point: PointTee, Lat: 35.2, Lon: -111.6},
		{Hole: 1, Point: PointBasket, BasketID: 1, Active: true, Lat: 35.201, Lon: -111.601},
		{Hole: 4, Point: PointBasket, BasketID: 2, Lat: 35.21, Lon: -111.61},
	}

	for _, e := range edits {
		once := apply(t, ThorpeParkLayout(), e)
		twice := apply(t, once, e)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("edit %+v not idempotent (-once +twice):\n%s", e, diff)
		}
	}
}

func TestApplyEdit_DoesNotMutateInput(t *testing.T) {
	original := ThorpeParkLayout()
	before := original.Clone()

	_, err := ApplyEdit(original, Edit{Hole: 1, Point: PointBasket, BasketID: 1, Lat: 1, Lon: 1})
	require.NoError(t, err)

	if diff := cmp.Diff(before, original); diff != "" {
		t.Errorf("input layout mutated:\n%s", diff)
	}
}

func TestApplyEdit_Invalid(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
	}{
		{"zero hole", Edit{Hole: 0, Point: PointTee, Lat: 35, Lon: -111}},
		{"unknown point", Edit{Hole: 1, Point: "flag", Lat: 35, Lon: -111}},
		{"basket without id", Edit{Hole: 1, Point: PointBasket, Lat: 35, Lon: -111}},
		{"no GPS reading", Edit{Hole: 1, Point: PointTee}},
		{"out of range", Edit{Hole: 1, Point: PointTee, Lat: 120, Lon: -111}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyEdit(Layout{}, tt.edit)
			assert.ErrorIs(t, err, ErrInvalidEdit)
		})
	}
}
