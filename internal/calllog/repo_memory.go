package calllog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu   sync.Mutex
	logs []CallLog

	// FailCreates makes Create return this error; used to exercise the
	// persistence-failure path.
	FailCreates error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Create(ctx context.Context, log CallLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreates != nil {
		return r.FailCreates
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, f ListFilter) ([]CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	out := make([]CallLog, 0, len(r.logs))
	for _, l := range r.logs {
		if f.PhoneContains != "" && !strings.Contains(strings.ToLower(l.Phone), strings.ToLower(f.PhoneContains)) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Direction != "" && l.Direction != f.Direction {
			continue
		}
		if !f.Since.IsZero() && l.Timestamp.Before(f.Since) {
			continue
		}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Logs returns a copy of everything stored, in insertion order.
func (r *MemoryRepo) Logs() []CallLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallLog, len(r.logs))
	copy(out, r.logs)
	return out
}
