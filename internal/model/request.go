package model

import (
	"fmt"
	"strings"
	"time"
)

// Coordinates is a geographic point in decimal degrees.
// Lat in [-90, 90], Lng in [-180, 180] (checked at the transport boundary).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is the claimed origin of a post: either raw coordinates or a
// named point of interest. Exactly one variant is populated.
type Location struct {
	Coords *Coordinates `json:"coords,omitempty"`
	Name   string       `json:"name,omitempty"`
	City   string       `json:"city,omitempty"`
}

// IsPOI reports whether the location is a named point of interest.
func (l Location) IsPOI() bool {
	return l.Name != ""
}

// Key returns the canonical location key used by the duplicate indices.
// Coordinates are keyed at 4 decimal places (~11 m), so nearby re-submissions
// of the same image count as the same place.
func (l Location) Key() string {
	if l.Coords != nil {
		return fmt.Sprintf("geo:%.4f,%.4f", l.Coords.Lat, l.Coords.Lng)
	}
	name := strings.ToLower(strings.TrimSpace(l.Name))
	city := strings.ToLower(strings.TrimSpace(l.City))
	return "poi:" + name + "|" + city
}

// ValidationRequest is the scoring engine's input. The transport layer is
// responsible for field presence, coordinate ranges, timestamp parsing, text
// length, and image size before a request reaches the engine.
type ValidationRequest struct {
	Text        string
	Image       []byte // nil when no image was attached
	Location    Location
	Timestamp   *time.Time // nil when no timestamp was supplied
	SubmitterID string     // hashed by the transport; empty for anonymous posts
}
