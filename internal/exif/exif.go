// Package exif models the GPS-extraction capability as a pluggable
// interface so a real metadata parser can be substituted without touching
// the image analyzer's scoring logic.
package exif

import "context"

// GPS is a coordinate pair embedded in image metadata, in decimal degrees.
type GPS struct {
	Lat float64
	Lng float64
}

// Extractor reports GPS coordinates found in image content. Implementations
// return (nil, nil) when the image carries no location metadata.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*GPS, error)
}

// AbsentExtractor is the default capability: it never finds metadata.
type AbsentExtractor struct{}

func (AbsentExtractor) Extract(ctx context.Context, image []byte) (*GPS, error) {
	return nil, nil
}
