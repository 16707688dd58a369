package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/zerox-toml/superworld-proof-of-place/internal/config"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
)

// Fixed contributions per match category. Each category is capped, then the
// total is capped at 1.0.
const (
	exactPOIMatchScore = 0.5
	poiWordMatchScore  = 0.1
	poiWordMatchCap    = 0.3
	nicknameMatchScore = 0.25
	cityMatchScore     = 0.15
	entityMatchScore   = 0.05
	entityMatchCap     = 0.15

	// Coordinates-only claims offer less context to match against.
	coordsOnlyPenalty = 0.7

	// A post with no matches at all still gets a floor, not zero.
	noMatchFloor = 0.1

	// POI name words this short ("of", "the", "at") are skipped.
	minPOIWordLen = 4
)

var (
	// abbrevRe matches ALL-CAPS tokens of length >= 2 (candidate venue abbreviations).
	abbrevRe = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	// quotedRe captures phrases in double quotes.
	quotedRe = regexp.MustCompile(`"([^"]+)"`)
)

// TextResult is the text analyzer's output: the signal, the entities pulled
// from the post, and the matches found against the claimed location.
type TextResult struct {
	Score    float64
	Entities []string
	Matches  []string
}

// TextService scores lexical consistency between a post's text and its
// claimed location.
type TextService struct {
	tables *config.LookupTables
}

func NewTextService(tables *config.LookupTables) *TextService {
	return &TextService{tables: tables}
}

// Analyze extracts entities from text and matches them against the claimed
// location. Pure: no shared state is read or written.
func (s *TextService) Analyze(text string, loc model.Location) TextResult {
	lower := strings.ToLower(text)
	entities := s.extractEntities(text, lower)

	var matches []string
	var score float64

	if loc.IsPOI() {
		score, matches = s.matchPOI(lower, loc, entities)
	} else {
		// No POI context: only well-known city tokens can match.
		for _, city := range s.tables.CityTokens {
			if strings.Contains(lower, city) {
				matches = append(matches, "city:"+city)
				score += cityMatchScore
			}
		}
		score *= coordsOnlyPenalty
	}

	if len(matches) == 0 {
		return TextResult{Score: noMatchFloor, Entities: entities}
	}

	return TextResult{
		Score:    math.Min(score, 1.0),
		Entities: entities,
		Matches:  matches,
	}
}

func (s *TextService) matchPOI(lower string, loc model.Location, entities []string) (float64, []string) {
	name := strings.ToLower(strings.TrimSpace(loc.Name))
	city := strings.ToLower(strings.TrimSpace(loc.City))

	var matches []string
	var score float64

	if name != "" && strings.Contains(lower, name) {
		matches = append(matches, "poi:"+name)
		score += exactPOIMatchScore
	}

	var wordScore float64
	for _, word := range strings.Fields(name) {
		if len(word) < minPOIWordLen {
			continue
		}
		if strings.Contains(lower, word) {
			matches = append(matches, "word:"+word)
			wordScore += poiWordMatchScore
		}
	}
	score += math.Min(wordScore, poiWordMatchCap)

	for _, nick := range s.tables.Nicknames[name] {
		if strings.Contains(lower, nick) {
			matches = append(matches, "nickname:"+nick)
			score += nicknameMatchScore
			break
		}
	}

	if city != "" && strings.Contains(lower, city) {
		matches = append(matches, "city:"+city)
		score += cityMatchScore
	}

	var entityScore float64
	for _, entity := range entities {
		if strings.Contains(name, strings.ToLower(entity)) {
			matches = append(matches, "entity:"+strings.ToLower(entity))
			entityScore += entityMatchScore
		}
	}
	score += math.Min(entityScore, entityMatchCap)

	return score, matches
}

// extractEntities pulls venue-vocabulary words, ALL-CAPS abbreviations, and
// quoted phrases out of the post text.
func (s *TextService) extractEntities(text, lower string) []string {
	seen := make(map[string]struct{})
	var entities []string

	add := func(e string) {
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		entities = append(entities, e)
	}

	for _, keyword := range s.tables.VenueVocabulary {
		if strings.Contains(lower, keyword) {
			add(keyword)
		}
	}
	for _, abbrev := range abbrevRe.FindAllString(text, -1) {
		add(abbrev)
	}
	for _, quoted := range quotedRe.FindAllStringSubmatch(text, -1) {
		add(quoted[1])
	}

	return entities
}
