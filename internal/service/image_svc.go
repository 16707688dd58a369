package service

import (
	"context"
	"math"

	"github.com/zerox-toml/superworld-proof-of-place/internal/exif"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
	"github.com/zerox-toml/superworld-proof-of-place/internal/repository"
	"github.com/zerox-toml/superworld-proof-of-place/pkg/hash"
)

const (
	// No image, or image with no usable metadata, is neutral evidence.
	neutralImageScore = 0.5

	// Leading bytes hashed into the content fingerprint.
	fingerprintPrefixBytes = 4096

	// Score multiplier when the same image was submitted at another location.
	duplicateImagePenalty = 0.3

	// Distance bands for EXIF GPS vs the claimed coordinates, in meters.
	distNearMeters  = 100.0
	distCloseMeters = 1000.0
	distCityMeters  = 5000.0
	distNearScore   = 0.9
	distCloseScore  = 0.7
	distCityScore   = 0.5
	distFarScore    = 0.2

	earthRadiusMeters = 6371000.0
)

// ImageResult is the image analyzer's output.
type ImageResult struct {
	Score        float64
	HasExif      bool
	ExifLocation *exif.GPS
	IsDuplicate  bool
	Fingerprint  string
}

// ImageService scores the evidentiary strength of an attached image and
// maintains the process-wide duplicate-image index.
type ImageService struct {
	extractor exif.Extractor
	dedup     *repository.DedupRepo
}

func NewImageService(extractor exif.Extractor, dedup *repository.DedupRepo) *ImageService {
	return &ImageService{extractor: extractor, dedup: dedup}
}

// Analyze fingerprints the image, consults the EXIF capability, applies the
// duplicate penalty, and records the sighting. A missing image scores
// neutral. Extraction failures degrade to "no metadata", never an error.
func (s *ImageService) Analyze(ctx context.Context, image []byte, loc model.Location) ImageResult {
	if len(image) == 0 {
		return ImageResult{Score: neutralImageScore}
	}

	result := ImageResult{
		Score:       neutralImageScore,
		Fingerprint: hash.ContentFingerprint(image, fingerprintPrefixBytes),
	}

	gps, err := s.extractor.Extract(ctx, image)
	if err == nil && gps != nil {
		result.HasExif = true
		result.ExifLocation = gps
		if loc.Coords != nil {
			d := HaversineMeters(gps.Lat, gps.Lng, loc.Coords.Lat, loc.Coords.Lng)
			result.Score = distanceScore(d)
		}
	}

	locKey := loc.Key()
	if s.dedup.ImageSeenElsewhere(result.Fingerprint, locKey) {
		result.IsDuplicate = true
		result.Score *= duplicateImagePenalty
	}
	s.dedup.RecordImage(result.Fingerprint, locKey)

	return result
}

func distanceScore(meters float64) float64 {
	switch {
	case meters <= distNearMeters:
		return distNearScore
	case meters <= distCloseMeters:
		return distCloseScore
	case meters <= distCityMeters:
		return distCityScore
	default:
		return distFarScore
	}
}

// HaversineMeters returns the great-circle distance between two lat/lng
// pairs in degrees, using the Earth mean radius of 6,371,000 m.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
