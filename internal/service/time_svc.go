package service

import (
	"strings"
	"time"

	"github.com/zerox-toml/superworld-proof-of-place/internal/config"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

const (
	noTimestampScore    = 0.5
	futureScore         = 0.1
	staleScore          = 0.3
	eventHoursScore     = 0.9
	secondaryHoursScore = 0.7
	offHoursScore       = 0.4

	plausibleThreshold = 0.4

	// Posts older than a year are treated as stale.
	maxTimestampAge = 365 * 24 * time.Hour
)

// venueSchedule describes when activity at a venue type is believable:
// a strict typical-event-hours range and an optional secondary range of
// reduced plausibility. Hours are inclusive, local to the timestamp's zone.
type venueSchedule struct {
	eventStart, eventEnd         int
	secondaryStart, secondaryEnd int // -1 when the type has no secondary band
}

var venueSchedules = map[string]venueSchedule{
	"sports":      {19, 23, 12, 18},
	"performance": {19, 23, 12, 18},
	"dining":      {11, 22, 7, 10}, // breakfast secondary
	"outdoor":     {6, 21, -1, -1},
	"cultural":    {10, 18, -1, -1},
	"general":     {8, 22, -1, -1},
}

// venueTypeOrder fixes the inference order so scoring stays deterministic
// when a POI name contains keywords from several types.
var venueTypeOrder = []string{"sports", "performance", "dining", "cultural", "outdoor"}

// TimeResult is the time analyzer's output.
type TimeResult struct {
	Score       float64
	IsPlausible bool
	Reason      string
}

// TimeService scores how plausible a post's timestamp is for the kind of
// venue the claimed location appears to be.
type TimeService struct {
	tables *config.LookupTables
	now    func() time.Time
}

func NewTimeService(tables *config.LookupTables) *TimeService {
	return &TimeService{tables: tables, now: time.Now}
}

// Analyze checks a timestamp against the inferred venue schedule. A nil
// timestamp is neutral, never a penalty.
func (s *TimeService) Analyze(ts *time.Time, loc model.Location) TimeResult {
	if ts == nil {
		return TimeResult{Score: noTimestampScore, IsPlausible: true, Reason: "no timestamp provided"}
	}

	now := s.now()
	if ts.After(now) {
		return TimeResult{Score: futureScore, IsPlausible: false, Reason: "future timestamp"}
	}
	if now.Sub(*ts) > maxTimestampAge {
		return TimeResult{Score: staleScore, IsPlausible: false, Reason: "too old"}
	}

	venueType := s.inferVenueType(loc)
	schedule := venueSchedules[venueType]
	hour := ts.Hour()

	var score float64
	var reason string
	switch {
	case inHourRange(hour, schedule.eventStart, schedule.eventEnd):
		score, reason = eventHoursScore, "within typical hours"
	case hourPlausibility(hour, schedule) > 0.5:
		score, reason = secondaryHoursScore, "plausible for venue type"
	default:
		score, reason = offHoursScore, "outside typical hours"
	}

	return TimeResult{
		Score:       score,
		IsPlausible: score >= plausibleThreshold,
		Reason:      reason,
	}
}

// inferVenueType categorizes a POI by name keywords. Coordinates-only
// locations always fall back to "general".
func (s *TimeService) inferVenueType(loc model.Location) string {
	if !loc.IsPOI() {
		return "general"
	}
	name := strings.ToLower(loc.Name)
	for _, venueType := range venueTypeOrder {
		for _, keyword := range s.tables.VenueKeywords[venueType] {
			if strings.Contains(name, keyword) {
				return venueType
			}
		}
	}
	return "general"
}

// hourPlausibility maps an hour to a coarse plausibility for the schedule:
// full inside event hours, reduced in the secondary band, low otherwise.
func hourPlausibility(hour int, schedule venueSchedule) float64 {
	switch {
	case inHourRange(hour, schedule.eventStart, schedule.eventEnd):
		return 1.0
	case schedule.secondaryStart >= 0 && inHourRange(hour, schedule.secondaryStart, schedule.secondaryEnd):
		return 0.6
	default:
		return 0.2
	}
}

func inHourRange(hour, start, end int) bool {
	return hour >= start && hour <= end
}
