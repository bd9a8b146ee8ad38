package summaryrepo

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ Repo = (*InMemorySummaryRepo)(nil)

// InMemorySummaryRepo is an in-memory implementation of Repo
type InMemorySummaryRepo struct {
	mu        sync.RWMutex
	summaries map[uuid.UUID]Summary
}

func NewInMemorySummaryRepo() *InMemorySummaryRepo {
	return &InMemorySummaryRepo{
		summaries: make(map[uuid.UUID]Summary),
	}
}

func (r *InMemorySummaryRepo) Create(summary Summary) error {
	if summary.ID == uuid.Nil {
		return fmt.Errorf("summary id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.summaries[summary.ID]; ok {
		return fmt.Errorf("summary %s already exists", summary.ID)
	}
	r.summaries[summary.ID] = summary
	return nil
}

func (r *InMemorySummaryRepo) Get(id uuid.UUID) (Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.summaries[id]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return s, nil
}

// ListByUser returns the user's summaries, oldest first.
func (r *InMemorySummaryRepo) ListByUser(userID int64) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Summary, 0)
	for _, s := range r.summaries {
		if s.UserID == userID {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
	return list, nil
}

func (r *InMemorySummaryRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.summaries[id]; !ok {
		return ErrNotFound
	}
	delete(r.summaries, id)
	return nil
}
