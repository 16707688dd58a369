package model

// Classification buckets a confidence score for downstream trust gating.
type Classification string

const (
	ClassPass          Classification = "PASS"
	ClassLowConfidence Classification = "LOW_CONFIDENCE"
	ClassFlagged       Classification = "FLAGGED"
)

// SignalBreakdown carries each analyzer's scalar output in [0,1], rounded to
// 4 decimal places. SpamRisk is a risk, not a positive signal.
type SignalBreakdown struct {
	TextPlaceMatch   float64 `json:"text_place_match"`
	ImageLandmark    float64 `json:"image_landmark"`
	TimePlausibility float64 `json:"time_plausibility"`
	SpamRisk         float64 `json:"spam_risk"`
}

// ValidationResponse is the engine's output: the aggregate confidence score,
// its classification, the per-signal breakdown, and newline-joined reasoning.
type ValidationResponse struct {
	Score          float64         `json:"score"`
	Classification Classification  `json:"classification"`
	Signals        SignalBreakdown `json:"signals"`
	Explanation    string          `json:"explanation"`
}
