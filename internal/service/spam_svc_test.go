package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zerox-toml/superworld-proof-of-place/internal/repository"
)

var spamTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newSpamService() *SpamService {
	svc := NewSpamService(repository.NewDedupRepo(), repository.NewHistoryRepo())
	svc.now = func() time.Time { return spamTestNow }
	return svc
}

func TestSpamAnalyze_CleanText(t *testing.T) {
	svc := newSpamService()

	got := svc.Analyze("Watching the sunset over the bay, what a view", "", nil)

	if got.Risk != 0 {
		t.Errorf("Risk = %.2f, want 0", got.Risk)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "no spam indicators" {
		t.Errorf("Reasons = %v, want [no spam indicators]", got.Reasons)
	}
}

func TestSpamAnalyze_DuplicatePlusShort(t *testing.T) {
	svc := newSpamService()

	first := svc.Analyze("Nice!", "", nil)
	// Short text only (normalized "nice" is under the minimum).
	if !almostEqual(first.Risk, shortTextRisk, 0.0001) {
		t.Errorf("first Risk = %.2f, want %.2f", first.Risk, shortTextRisk)
	}

	second := svc.Analyze("Nice!", "", nil)
	// Duplicate (0.4) + short (0.2).
	if !almostEqual(second.Risk, duplicateTextRisk+shortTextRisk, 0.0001) {
		t.Errorf("second Risk = %.2f, want %.2f", second.Risk, duplicateTextRisk+shortTextRisk)
	}

	foundDup := false
	for _, r := range second.Reasons {
		if strings.Contains(r, "duplicate text (seen 1 times before)") {
			foundDup = true
		}
	}
	if !foundDup {
		t.Errorf("Reasons = %v, want duplicate reason with prior count", second.Reasons)
	}
}

func TestSpamAnalyze_DuplicateDetectsRestyledCopies(t *testing.T) {
	svc := newSpamService()

	svc.Analyze("Best   coffee in town, hands down", "", nil)
	got := svc.Analyze("BEST COFFEE IN TOWN... hands down!!!", "", nil)

	if got.Risk < duplicateTextRisk {
		t.Errorf("Risk = %.2f, want duplicate risk despite restyling", got.Risk)
	}
}

func TestSpamAnalyze_HashtagAndURLSpam(t *testing.T) {
	svc := newSpamService()

	hashtags := "look at this"
	for i := 0; i < 11; i++ {
		hashtags += fmt.Sprintf(" #tag%d", i)
	}
	got := svc.Analyze(hashtags, "", nil)
	if !almostEqual(got.Risk, hashtagRisk, 0.0001) {
		t.Errorf("hashtag Risk = %.2f, want %.2f (reasons %v)", got.Risk, hashtagRisk, got.Reasons)
	}

	urls := "click https://a.example https://b.example https://c.example https://d.example now please"
	got = svc.Analyze(urls, "", nil)
	if !almostEqual(got.Risk, urlRisk, 0.0001) {
		t.Errorf("url Risk = %.2f, want %.2f (reasons %v)", got.Risk, urlRisk, got.Reasons)
	}
}

func TestSpamAnalyze_BurstLaw(t *testing.T) {
	svc := newSpamService()
	sub := "submitter-hash"

	// Five submissions inside the trailing window.
	for i := 0; i < 5; i++ {
		ts := spamTestNow.Add(time.Duration(-4+i) * time.Minute)
		svc.Analyze("unique text number "+strings.Repeat("x", i+1), sub, &ts)
	}

	ts := spamTestNow
	got := svc.Analyze("one more distinct submission right now", sub, &ts)

	if got.Risk < burstHighRisk {
		t.Errorf("Risk = %.2f, want at least %.2f from the burst check alone", got.Risk, burstHighRisk)
	}
}

func TestSpamAnalyze_MediumBurst(t *testing.T) {
	svc := newSpamService()
	sub := "submitter-hash"

	for i := 0; i < 3; i++ {
		ts := spamTestNow.Add(time.Duration(-3+i) * time.Minute)
		svc.Analyze("different text each time "+strings.Repeat("y", i+1), sub, &ts)
	}

	ts := spamTestNow
	got := svc.Analyze("and yet another new submission", sub, &ts)

	if !almostEqual(got.Risk, burstMediumRisk, 0.0001) {
		t.Errorf("Risk = %.2f, want medium burst %.2f (reasons %v)", got.Risk, burstMediumRisk, got.Reasons)
	}
}

func TestSpamAnalyze_BurstWindowExpires(t *testing.T) {
	svc := newSpamService()
	sub := "submitter-hash"

	// Old submissions outside the 5 minute window.
	for i := 0; i < 6; i++ {
		ts := spamTestNow.Add(-time.Hour).Add(time.Duration(i) * time.Second)
		svc.Analyze("old submission text variant "+strings.Repeat("z", i+1), sub, &ts)
	}

	ts := spamTestNow
	got := svc.Analyze("fresh submission well after the burst", sub, &ts)

	if got.Risk != 0 {
		t.Errorf("Risk = %.2f, want 0 once the window has passed (reasons %v)", got.Risk, got.Reasons)
	}
}

func TestSpamAnalyze_Shingling(t *testing.T) {
	svc := newSpamService()

	phrase := "come visit our amazing place "
	tripled := strings.Repeat(phrase, 3)
	got := svc.Analyze(tripled, "", nil)
	if !almostEqual(got.Risk, shingleHighRisk, 0.0001) {
		t.Errorf("tripled Risk = %.2f, want %.2f (reasons %v)", got.Risk, shingleHighRisk, got.Reasons)
	}

	svc = newSpamService()
	doubled := strings.Repeat(phrase, 2) + "and a closing thought"
	got = svc.Analyze(doubled, "", nil)
	if !almostEqual(got.Risk, shingleMediumRisk, 0.0001) {
		t.Errorf("doubled Risk = %.2f, want %.2f (reasons %v)", got.Risk, shingleMediumRisk, got.Reasons)
	}
}

func TestSpamAnalyze_RiskCapped(t *testing.T) {
	svc := newSpamService()
	sub := "submitter-hash"

	spammy := strings.Repeat("buy now visit site today ", 3) +
		strings.Repeat("#promo ", 11) +
		"https://a.example https://b.example https://c.example https://d.example"

	// Prime every index: duplicate text and a heavy burst.
	for i := 0; i < 6; i++ {
		ts := spamTestNow.Add(time.Duration(-5+i) * time.Minute)
		svc.Analyze(spammy, sub, &ts)
	}

	ts := spamTestNow
	got := svc.Analyze(spammy, sub, &ts)

	if got.Risk != 1.0 {
		t.Errorf("Risk = %.2f, want capped at 1.0", got.Risk)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Hello World", "hello world"},
		{"strips punctuation", "great, place!", "great place"},
		{"collapses whitespace", "a   b\t c", "a b c"},
		{"trims", "  edge  ", "edge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaxShingleRepeats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"too short for a shingle", "one two three four", 0},
		{"no repeats", "one two three four five six seven", 1},
		{"phrase repeated twice", "a b c d e a b c d e", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxShingleRepeats(tt.text, shingleWidth); got != tt.want {
				t.Errorf("maxShingleRepeats = %d, want %d", got, tt.want)
			}
		})
	}
}
