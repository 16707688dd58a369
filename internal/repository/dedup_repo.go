package repository

import "sync"

// DedupRepo owns the process-wide duplicate indices: image fingerprint →
// set of location keys it was submitted under, and normalized-text
// fingerprint → occurrence count. Entries are never evicted; both indices
// live for the life of the process. All access goes through the mutex so
// overlapping requests see consistent per-key state.
type DedupRepo struct {
	mu             sync.Mutex
	imageLocations map[string]map[string]struct{}
	textCounts     map[string]int
}

func NewDedupRepo() *DedupRepo {
	return &DedupRepo{
		imageLocations: make(map[string]map[string]struct{}),
		textCounts:     make(map[string]int),
	}
}

// ImageSeenElsewhere reports whether fingerprint was previously recorded
// under any location key other than locKey. A first-time fingerprint, or one
// always submitted at the same place, is not a duplicate.
func (r *DedupRepo) ImageSeenElsewhere(fingerprint, locKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	locs, ok := r.imageLocations[fingerprint]
	if !ok {
		return false
	}
	for key := range locs {
		if key != locKey {
			return true
		}
	}
	return false
}

// RecordImage associates fingerprint with locKey. Idempotent.
func (r *DedupRepo) RecordImage(fingerprint, locKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	locs, ok := r.imageLocations[fingerprint]
	if !ok {
		locs = make(map[string]struct{})
		r.imageLocations[fingerprint] = locs
	}
	locs[locKey] = struct{}{}
}

// TextCount returns how many times fingerprint has been recorded so far.
func (r *DedupRepo) TextCount(fingerprint string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textCounts[fingerprint]
}

// RecordText increments fingerprint's occurrence count and returns the new count.
func (r *DedupRepo) RecordText(fingerprint string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textCounts[fingerprint]++
	return r.textCounts[fingerprint]
}

// Stats returns the current index sizes (distinct image and text fingerprints).
func (r *DedupRepo) Stats() (images, texts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.imageLocations), len(r.textCounts)
}
