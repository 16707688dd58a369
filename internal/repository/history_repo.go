package repository

import (
	"sync"
	"time"
)

// MaxHistoryEntries caps each submitter's history; oldest entries are
// evicted first once the cap is exceeded.
const MaxHistoryEntries = 100

// HistoryEntry is one recorded submission for a submitter.
type HistoryEntry struct {
	At          time.Time
	Fingerprint string
}

// HistoryRepo keeps a bounded, ordered submission history per submitter,
// used by the burst check. Like DedupRepo it is process-lifetime state,
// created empty at startup and injected into the spam analyzer.
type HistoryRepo struct {
	mu         sync.Mutex
	entries    map[string][]HistoryEntry
	maxEntries int
}

func NewHistoryRepo() *HistoryRepo {
	return &HistoryRepo{
		entries:    make(map[string][]HistoryEntry),
		maxEntries: MaxHistoryEntries,
	}
}

// CountInWindow returns how many recorded submissions submitterID made in
// [from, to], inclusive on both ends.
func (r *HistoryRepo) CountInWindow(submitterID string, from, to time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries[submitterID] {
		if !e.At.Before(from) && !e.At.After(to) {
			count++
		}
	}
	return count
}

// Record appends a submission to submitterID's history, evicting the oldest
// entries beyond the cap.
func (r *HistoryRepo) Record(submitterID string, at time.Time, fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append(r.entries[submitterID], HistoryEntry{At: at, Fingerprint: fingerprint})
	if len(list) > r.maxEntries {
		list = list[len(list)-r.maxEntries:]
	}
	r.entries[submitterID] = list
}

// Submitters returns the number of tracked submitters.
func (r *HistoryRepo) Submitters() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
