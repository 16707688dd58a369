package service

import (
	"testing"
	"time"

	"github.com/zerox-toml/superworld-proof-of-place/internal/config"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

var timeTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTimeService() *TimeService {
	svc := NewTimeService(config.DefaultTables())
	svc.now = func() time.Time { return timeTestNow }
	return svc
}

func ptr(t time.Time) *time.Time { return &t }

func TestTimeAnalyze_MissingAndOutOfRange(t *testing.T) {
	svc := newTimeService()
	loc := model.Location{Name: "Madison Square Garden"}

	tests := []struct {
		name          string
		ts            *time.Time
		wantScore     float64
		wantPlausible bool
		wantReason    string
	}{
		{"no timestamp", nil, 0.5, true, "no timestamp provided"},
		{"future timestamp", ptr(timeTestNow.Add(time.Hour)), 0.1, false, "future timestamp"},
		{"older than a year", ptr(timeTestNow.AddDate(-1, -1, 0)), 0.3, false, "too old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Analyze(tt.ts, loc)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %.2f, want %.2f", got.Score, tt.wantScore)
			}
			if got.IsPlausible != tt.wantPlausible {
				t.Errorf("IsPlausible = %v, want %v", got.IsPlausible, tt.wantPlausible)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestTimeAnalyze_VenueBands(t *testing.T) {
	svc := newTimeService()
	day := timeTestNow.AddDate(0, 0, -1)
	at := func(hour int) *time.Time {
		return ptr(time.Date(day.Year(), day.Month(), day.Day(), hour, 30, 0, 0, time.UTC))
	}

	tests := []struct {
		name       string
		loc        model.Location
		hour       int
		wantScore  float64
		wantReason string
	}{
		{"arena at 20:30", model.Location{Name: "Madison Square Garden"}, 20, 0.9, "within typical hours"},
		{"arena in the afternoon", model.Location{Name: "Yankee Stadium"}, 15, 0.7, "plausible for venue type"},
		{"arena at 3am", model.Location{Name: "Yankee Stadium"}, 3, 0.4, "outside typical hours"},
		{"restaurant at lunch", model.Location{Name: "Joe's Restaurant"}, 12, 0.9, "within typical hours"},
		{"restaurant at breakfast", model.Location{Name: "Joe's Restaurant"}, 8, 0.7, "plausible for venue type"},
		{"restaurant at 4am", model.Location{Name: "Joe's Restaurant"}, 4, 0.4, "outside typical hours"},
		{"park in the morning", model.Location{Name: "Central Park"}, 9, 0.9, "within typical hours"},
		{"park at midnight", model.Location{Name: "Central Park"}, 0, 0.4, "outside typical hours"},
		{"museum mid-day", model.Location{Name: "British Museum"}, 14, 0.9, "within typical hours"},
		{"museum late night", model.Location{Name: "British Museum"}, 23, 0.4, "outside typical hours"},
		{"coordinates use general band", model.Location{Coords: &model.Coordinates{Lat: 1, Lng: 2}}, 10, 0.9, "within typical hours"},
		{"coordinates off hours", model.Location{Coords: &model.Coordinates{Lat: 1, Lng: 2}}, 3, 0.4, "outside typical hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Analyze(at(tt.hour), tt.loc)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %.2f, want %.2f", got.Score, tt.wantScore)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if !got.IsPlausible {
				t.Error("in-range timestamps are always at least marginally plausible")
			}
		})
	}
}

func TestInferVenueType(t *testing.T) {
	svc := newTimeService()

	tests := []struct {
		name string
		loc  model.Location
		want string
	}{
		{"garden counts as sports arena", model.Location{Name: "Madison Square Garden"}, "sports"},
		{"theatre", model.Location{Name: "Apollo Theatre"}, "performance"},
		{"cafe", model.Location{Name: "Central Perk Cafe"}, "dining"},
		{"museum", model.Location{Name: "Natural History Museum"}, "cultural"},
		{"beach", model.Location{Name: "Bondi Beach"}, "outdoor"},
		{"unrecognized poi", model.Location{Name: "The Vault"}, "general"},
		{"coordinates", model.Location{Coords: &model.Coordinates{}}, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.inferVenueType(tt.loc); got != tt.want {
				t.Errorf("inferVenueType = %q, want %q", got, tt.want)
			}
		})
	}
}
