package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/zerox-toml/superworld-proof-of-place/internal/repository"
	"github.com/zerox-toml/superworld-proof-of-place/pkg/hash"
)

// Risk contributions accumulate additively and are capped at 1.0.
const (
	duplicateTextRisk = 0.4

	minNormalizedLen = 10
	shortTextRisk    = 0.2

	maxHashtags = 10
	hashtagRisk = 0.2

	maxURLs = 3
	urlRisk = 0.3

	burstWindow          = 5 * time.Minute
	burstHighThreshold   = 5
	burstHighRisk        = 0.5
	burstMediumThreshold = 3
	burstMediumRisk      = 0.3

	shingleWidth          = 5
	shingleHighRepeats    = 3
	shingleHighRisk       = 0.4
	shingleMediumRepeats  = 2
	shingleMediumRisk     = 0.2
)

var (
	hashtagRe = regexp.MustCompile(`#\w+`)
	urlRe     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	punctRe   = regexp.MustCompile(`[^\w\s]`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// SpamResult is the spam analyzer's output. Risk is a penalty signal.
type SpamResult struct {
	Risk    float64
	Reasons []string
}

// SpamService scores gaming/abuse risk from content and submission-cadence
// patterns, backed by the shared duplicate-text index and the per-submitter
// rolling history.
type SpamService struct {
	dedup   *repository.DedupRepo
	history *repository.HistoryRepo
	now     func() time.Time
}

func NewSpamService(dedup *repository.DedupRepo, history *repository.HistoryRepo) *SpamService {
	return &SpamService{dedup: dedup, history: history, now: time.Now}
}

// Analyze runs the independent risk checks, then records the submission into
// the shared indices. The record step always runs, whatever risk was found.
func (s *SpamService) Analyze(text, submitterID string, ts *time.Time) SpamResult {
	normalized := NormalizeText(text)
	fingerprint := hash.SHA256Hex(normalized)

	at := s.now()
	if ts != nil {
		at = *ts
	}

	var risk float64
	var reasons []string

	if prior := s.dedup.TextCount(fingerprint); prior > 0 {
		risk += duplicateTextRisk
		reasons = append(reasons, fmt.Sprintf("duplicate text (seen %d times before)", prior))
	}

	if len(normalized) < minNormalizedLen {
		risk += shortTextRisk
		reasons = append(reasons, "text too short")
	}

	if n := len(hashtagRe.FindAllString(text, -1)); n > maxHashtags {
		risk += hashtagRisk
		reasons = append(reasons, fmt.Sprintf("excessive hashtags (%d)", n))
	}

	if n := len(urlRe.FindAllString(text, -1)); n > maxURLs {
		risk += urlRisk
		reasons = append(reasons, fmt.Sprintf("url spam (%d urls)", n))
	}

	if submitterID != "" {
		prior := s.history.CountInWindow(submitterID, at.Add(-burstWindow), at)
		switch {
		case prior >= burstHighThreshold:
			risk += burstHighRisk
			reasons = append(reasons, fmt.Sprintf("burst: %d submissions in the last %s", prior, burstWindow))
		case prior >= burstMediumThreshold:
			risk += burstMediumRisk
			reasons = append(reasons, fmt.Sprintf("elevated cadence: %d submissions in the last %s", prior, burstWindow))
		}
	}

	switch repeats := maxShingleRepeats(normalized, shingleWidth); {
	case repeats >= shingleHighRepeats:
		risk += shingleHighRisk
		reasons = append(reasons, fmt.Sprintf("copy-paste pattern (shingle repeated %d times)", repeats))
	case repeats >= shingleMediumRepeats:
		risk += shingleMediumRisk
		reasons = append(reasons, "repeated phrasing")
	}

	risk = math.Min(risk, 1.0)
	if len(reasons) == 0 {
		reasons = []string{"no spam indicators"}
	}

	// Record step: always runs, regardless of detected risk.
	s.dedup.RecordText(fingerprint)
	if submitterID != "" && ts != nil {
		s.history.Record(submitterID, at, fingerprint)
	}

	return SpamResult{Risk: risk, Reasons: reasons}
}

// NormalizeText lowercases, strips punctuation, and collapses whitespace so
// trivially restyled copies fingerprint identically.
func NormalizeText(text string) string {
	t := strings.ToLower(text)
	t = punctRe.ReplaceAllString(t, "")
	t = spaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// maxShingleRepeats slides a width-word window across the text and returns
// the highest occurrence count of any shingle.
func maxShingleRepeats(normalized string, width int) int {
	words := strings.Fields(normalized)
	if len(words) < width {
		return 0
	}

	counts := make(map[string]int)
	best := 0
	for i := 0; i+width <= len(words); i++ {
		shingle := strings.Join(words[i:i+width], " ")
		counts[shingle]++
		if counts[shingle] > best {
			best = counts[shingle]
		}
	}
	return best
}
