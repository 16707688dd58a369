package model

import "testing"

func TestLocationKey(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{
			"coordinates rounded to 4 places",
			Location{Coords: &Coordinates{Lat: 40.750504, Lng: -73.993439}},
			"geo:40.7505,-73.9934",
		},
		{
			"poi lowercased and trimmed",
			Location{Name: "  Madison Square Garden ", City: "New York"},
			"poi:madison square garden|new york",
		},
		{
			"poi without city",
			Location{Name: "Central Park"},
			"poi:central park|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationKey_NearbyCoordsCollapse(t *testing.T) {
	a := Location{Coords: &Coordinates{Lat: 40.75051, Lng: -73.99341}}
	b := Location{Coords: &Coordinates{Lat: 40.75049, Lng: -73.99339}}
	if a.Key() != b.Key() {
		t.Errorf("keys %q and %q should collapse at 4 decimal places", a.Key(), b.Key())
	}
}

func TestIsPOI(t *testing.T) {
	if (Location{Coords: &Coordinates{}}).IsPOI() {
		t.Error("coordinates-only location should not be a POI")
	}
	if !(Location{Name: "Louvre"}).IsPOI() {
		t.Error("named location should be a POI")
	}
}
