package middleware

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

// Boundary limits. Requests violating them never reach the scoring engine.
const (
	MaxTextLen        = 10000
	MaxPOINameLen     = 200
	MaxCityLen        = 100
	MaxSubmitterIDLen = 128
	MaxImageBytes     = 10 << 20 // 10 MiB
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateText checks that post text is present and within limits.
func ValidateText(text string) (string, string) {
	if strings.TrimSpace(text) == "" {
		return "", "text is required"
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return "", "text must be at most 10000 characters"
	}
	return text, ""
}

// ValidateCoordinates parses and range-checks a lat/lng pair.
func ValidateCoordinates(latStr, lngStr string) (*model.Coordinates, string) {
	if strings.TrimSpace(latStr) == "" || strings.TrimSpace(lngStr) == "" {
		return nil, "both lat and lng are required for a coordinate claim"
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, "lat must be a decimal number"
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return nil, "lng must be a decimal number"
	}
	if lat < -90 || lat > 90 {
		return nil, "lat must be within [-90, 90]"
	}
	if lng < -180 || lng > 180 {
		return nil, "lng must be within [-180, 180]"
	}
	return &model.Coordinates{Lat: lat, Lng: lng}, ""
}

// ValidatePOI checks a named point-of-interest claim.
func ValidatePOI(name, city string) (model.Location, string) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" {
		return model.Location{}, "poi_name must not be empty"
	}
	if len(name) > MaxPOINameLen {
		return model.Location{}, "poi_name must be at most 200 characters"
	}
	if len(city) > MaxCityLen {
		return model.Location{}, "poi_city must be at most 100 characters"
	}
	return model.Location{Name: name, City: city}, ""
}

// ValidateTimestamp parses an optional ISO-8601 timestamp. Empty input is
// valid and yields nil.
func ValidateTimestamp(s string) (*time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ""
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, "timestamp must be RFC3339 (e.g. 2025-06-15T20:30:00Z)"
	}
	return &ts, ""
}

// ValidateSubmitterID trims and length-checks an optional submitter id.
func ValidateSubmitterID(s string) (string, string) {
	s = strings.TrimSpace(s)
	if len(s) > MaxSubmitterIDLen {
		return "", "submitter_id must be at most 128 characters"
	}
	return s, ""
}
