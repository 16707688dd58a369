package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LookupTables holds the static matching data the analyzers consult:
// canonical POI name → nicknames, venue-type → POI name keywords, the
// entity-extraction vocabulary, and the well-known city tokens used when a
// claim carries only coordinates. Defaults ship in code; a YAML file can
// override any table without a rebuild.
type LookupTables struct {
	Nicknames       map[string][]string `yaml:"nicknames"`
	VenueKeywords   map[string][]string `yaml:"venue_keywords"`
	VenueVocabulary []string            `yaml:"venue_vocabulary"`
	CityTokens      []string            `yaml:"city_tokens"`
}

// DefaultTables returns the built-in lookup data. All strings are lowercase;
// the analyzers match against lowercased text.
func DefaultTables() *LookupTables {
	return &LookupTables{
		Nicknames: map[string][]string{
			"madison square garden":   {"msg", "the garden"},
			"wrigley field":           {"the friendly confines"},
			"lambeau field":           {"the frozen tundra"},
			"fenway park":             {"the fens"},
			"red rocks amphitheatre":  {"red rocks"},
			"empire state building":   {"esb"},
			"golden gate bridge":      {"the golden gate"},
			"metropolitan museum of art": {"the met"},
		},
		VenueKeywords: map[string][]string{
			"sports":      {"stadium", "arena", "field", "ballpark", "speedway", "garden", "coliseum", "court"},
			"performance": {"theater", "theatre", "concert", "opera", "amphitheater", "amphitheatre", "playhouse"},
			"dining":      {"restaurant", "cafe", "bar", "bistro", "diner", "grill", "pub", "pizzeria", "bakery", "steakhouse"},
			"cultural":    {"museum", "gallery", "library", "monument", "memorial", "cathedral"},
			"outdoor":     {"park", "trail", "beach", "lake", "mountain", "botanical", "pier", "promenade"},
		},
		VenueVocabulary: []string{
			"stadium", "arena", "theater", "theatre", "museum", "park", "garden",
			"hall", "restaurant", "cafe", "bar", "club", "gallery", "beach",
			"plaza", "square", "bridge", "tower", "airport", "station", "pier",
			"zoo", "library", "cathedral", "monument",
		},
		CityTokens: []string{
			"new york", "nyc", "manhattan", "brooklyn", "los angeles", "chicago",
			"boston", "san francisco", "miami", "seattle", "austin", "london",
			"paris", "berlin", "tokyo",
		},
	}
}

// LoadTables returns the default tables, with any table present in the YAML
// file at path replacing its default wholesale. An empty path means defaults.
func LoadTables(path string) (*LookupTables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup tables: %w", err)
	}
	defer f.Close()

	var override LookupTables
	if err := yaml.NewDecoder(f).Decode(&override); err != nil {
		return nil, fmt.Errorf("failed to decode lookup tables: %w", err)
	}

	if override.Nicknames != nil {
		tables.Nicknames = override.Nicknames
	}
	if override.VenueKeywords != nil {
		tables.VenueKeywords = override.VenueKeywords
	}
	if override.VenueVocabulary != nil {
		tables.VenueVocabulary = override.VenueVocabulary
	}
	if override.CityTokens != nil {
		tables.CityTokens = override.CityTokens
	}
	return tables, nil
}
