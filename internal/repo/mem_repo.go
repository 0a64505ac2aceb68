package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/query"
)

// MemTaskRepo implements TaskRepo in memory. It backs the service
// when no Postgres DSN is configured and doubles as the test store.
// Ids are monotonic and never reused.
type MemTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	tasks []dom.Task
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{}
}

func (r *MemTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	t.CreatedAt = time.Now().UTC()
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *MemTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return dom.Task{}, ErrNotFound
}

func (r *MemTaskRepo) List(_ context.Context, spec query.Spec) ([]dom.Task, error) {
	r.mu.Lock()
	matched := r.filtered(spec)
	r.mu.Unlock()

	// Stable sort: full ties keep creation order, so equal due dates
	// with equal timestamps still list earlier-created first.
	sort.SliceStable(matched, func(i, j int) bool {
		return specLess(matched[i], matched[j], spec.Order)
	})

	// Offset is only honored under a limit; offset alone never
	// paginates.
	if spec.Limit > 0 {
		start := spec.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := start + spec.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, nil
}

func (r *MemTaskRepo) Update(_ context.Context, id int64, patch TaskPatch) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		t := &r.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		return *t, nil
	}
	return dom.Task{}, ErrNotFound
}

func (r *MemTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemTaskRepo) Count(_ context.Context, spec query.Spec) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(spec))), nil
}

// filtered returns a copy of the tasks matching the spec's filters,
// in creation order. Callers hold r.mu.
func (r *MemTaskRepo) filtered(spec query.Spec) []dom.Task {
	out := make([]dom.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if spec.Status != nil && t.Status != *spec.Status {
			continue
		}
		if spec.Priority != nil && t.Priority != *spec.Priority {
			continue
		}
		out = append(out, t)
	}
	return out
}

func specLess(a, b dom.Task, order []query.OrderBy) bool {
	for _, o := range order {
		var c int
		switch o.Field {
		case query.FieldDueDate:
			c = strings.Compare(a.DueDate, b.DueDate)
		case query.FieldCreatedAt:
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				c = -1
			case b.CreatedAt.Before(a.CreatedAt):
				c = 1
			}
		}
		if c != 0 {
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
	}
	return false
}
