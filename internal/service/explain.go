package service

import (
	"fmt"
	"strings"

	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

const (
	strongSignal   = 0.7
	moderateSignal = 0.4

	// Above this risk, every spam reason is listed.
	spamDetailThreshold = 0.3
)

// buildExplanation renders the human-readable reasoning lines for an
// already-computed result. Pure formatting: it never recomputes a signal.
func buildExplanation(score float64, classification model.Classification,
	text TextResult, image ImageResult, tm TimeResult, spam SpamResult) string {

	lines := []string{
		fmt.Sprintf("Overall confidence %.4f (%s).", score, classification),
		fmt.Sprintf("Text-place match is %s (%.4f, %d matches).",
			signalStrength(text.Score), text.Score, len(text.Matches)),
		imageLine(image),
		fmt.Sprintf("Time plausibility is %s (%.4f, %s).",
			signalStrength(tm.Score), tm.Score, tm.Reason),
		spamLine(spam),
	}
	return strings.Join(lines, "\n")
}

func imageLine(image ImageResult) string {
	if image.IsDuplicate {
		return fmt.Sprintf("Image evidence is %s (%.4f, image previously seen at a different location).",
			signalStrength(image.Score), image.Score)
	}
	if image.Fingerprint == "" {
		return fmt.Sprintf("Image evidence is %s (%.4f, no image provided).",
			signalStrength(image.Score), image.Score)
	}
	return fmt.Sprintf("Image evidence is %s (%.4f).", signalStrength(image.Score), image.Score)
}

func spamLine(spam SpamResult) string {
	switch {
	case spam.Risk == 0:
		return "No spam indicators detected."
	case spam.Risk <= spamDetailThreshold:
		return fmt.Sprintf("Minor spam signal (%.4f risk): %s.", spam.Risk, spam.Reasons[0])
	default:
		return fmt.Sprintf("Elevated spam risk (%.4f): %s.", spam.Risk, strings.Join(spam.Reasons, "; "))
	}
}

func signalStrength(v float64) string {
	switch {
	case v >= strongSignal:
		return "strong"
	case v >= moderateSignal:
		return "moderate"
	default:
		return "weak"
	}
}
