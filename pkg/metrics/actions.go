package metrics

import (
	"sort"
	"sync"
)

// ActionCount captures how often a console action ran.
type ActionCount struct {
	Name      string `json:"name"`
	InFlight  int    `json:"inFlight"`
	Completed int    `json:"completed"`
	Panicked  int    `json:"panicked,omitempty"`
}

// ActionStats tracks dispatched controller actions by name.
type ActionStats struct {
	mu     sync.Mutex
	counts map[string]*ActionCount
}

// NewActionStats constructs an empty tracker.
func NewActionStats() *ActionStats {
	return &ActionStats{counts: make(map[string]*ActionCount)}
}

// Started records that an action began.
func (s *ActionStats) Started(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(name).InFlight++
}

// Finished records that an action returned. panicked marks a recovered panic.
func (s *ActionStats) Finished(name string, panicked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entry(name)
	if entry.InFlight > 0 {
		entry.InFlight--
	}
	entry.Completed++
	if panicked {
		entry.Panicked++
	}
}

// InFlight reports the number of actions currently running.
func (s *ActionStats) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, entry := range s.counts {
		total += entry.InFlight
	}
	return total
}

// Snapshot returns the counters sorted by action name.
func (s *ActionStats) Snapshot() []ActionCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ActionCount, 0, len(s.counts))
	for _, entry := range s.counts {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *ActionStats) entry(name string) *ActionCount {
	entry, ok := s.counts[name]
	if !ok {
		entry = &ActionCount{Name: name}
		s.counts[name] = entry
	}
	return entry
}
