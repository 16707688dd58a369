package service

import (
	"context"
	"math"
	"sync"

	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

// Aggregation weights and classification thresholds. Spam acts as a
// multiplicative penalty, not a fourth additive weight.
const (
	textWeight  = 0.4
	imageWeight = 0.3
	timeWeight  = 0.2
	spamWeight  = 0.1

	passThreshold          = 0.70
	lowConfidenceThreshold = 0.40
)

// Engine runs the four analyzers against one request and combines their
// outputs into a score, classification, and explanation.
type Engine struct {
	text  *TextService
	image *ImageService
	time  *TimeService
	spam  *SpamService

	mu     sync.Mutex
	totals map[model.Classification]int64
}

func NewEngine(text *TextService, image *ImageService, timeSvc *TimeService, spam *SpamService) *Engine {
	return &Engine{
		text:   text,
		image:  image,
		time:   timeSvc,
		spam:   spam,
		totals: make(map[model.Classification]int64),
	}
}

// Validate scores one request. The analyzers are independent; only the
// image and spam analyzers touch shared state, through their record steps.
func (e *Engine) Validate(ctx context.Context, req model.ValidationRequest) model.ValidationResponse {
	textRes := e.text.Analyze(req.Text, req.Location)
	imageRes := e.image.Analyze(ctx, req.Image, req.Location)
	timeRes := e.time.Analyze(req.Timestamp, req.Location)
	spamRes := e.spam.Analyze(req.Text, req.SubmitterID, req.Timestamp)

	base := textRes.Score*textWeight + imageRes.Score*imageWeight + timeRes.Score*timeWeight
	final := clamp01(base * (1 - spamRes.Risk*spamWeight))

	score := round4(final)
	classification := Classify(score)

	e.mu.Lock()
	e.totals[classification]++
	e.mu.Unlock()

	return model.ValidationResponse{
		Score:          score,
		Classification: classification,
		Signals: model.SignalBreakdown{
			TextPlaceMatch:   round4(textRes.Score),
			ImageLandmark:    round4(imageRes.Score),
			TimePlausibility: round4(timeRes.Score),
			SpamRisk:         round4(spamRes.Risk),
		},
		Explanation: buildExplanation(score, classification, textRes, imageRes, timeRes, spamRes),
	}
}

// Classify maps a confidence score to its trust bucket. Thresholds are
// non-overlapping and cover the full range.
func Classify(score float64) model.Classification {
	switch {
	case score >= passThreshold:
		return model.ClassPass
	case score >= lowConfidenceThreshold:
		return model.ClassLowConfidence
	default:
		return model.ClassFlagged
	}
}

// Totals returns per-classification counts since process start.
func (e *Engine) Totals() map[model.Classification]int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[model.Classification]int64, len(e.totals))
	for k, v := range e.totals {
		out[k] = v
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

// round4 rounds to the fixed 4-decimal precision used for reproducibility.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
