package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sravanikonapalli/task-tracker-thworks/internal/cache"
	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/insights"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/query"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/repo"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// Field-specific rejection messages. Validation always runs before the
// store is touched; the first failing field wins and nothing is
// partially applied.
const (
	msgTitle    = "Title is required and must be a non-empty string."
	msgDueDate  = "Due date is required and must be in 'YYYY-MM-DD' format."
	msgPriority = "Priority must be one of 'Low', 'Medium', or 'High'."
	msgStatus   = "Status must be one of 'Open', 'InProgress', or 'Done'."
	msgNoFields = "No valid fields provided to update."
)

// CreateTaskInput is the typed candidate record for a create. Nil
// Priority/Status mean "not supplied" and take the domain defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    *string
	DueDate     string
	Status      *string
}

// UpdateTaskInput is a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string
	Status      *string
}

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
	now   func() time.Time
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c, now: time.Now}
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (dom.Task, error) {
	if !dom.ValidTitle(in.Title) {
		return dom.Task{}, dom.Invalid("title", msgTitle)
	}
	if !dom.ValidDueDate(in.DueDate) {
		return dom.Task{}, dom.Invalid("due_date", msgDueDate)
	}
	priority := dom.PriorityMedium
	if in.Priority != nil {
		if !dom.ValidPriority(*in.Priority) {
			return dom.Task{}, dom.Invalid("priority", msgPriority)
		}
		priority = dom.Priority(*in.Priority)
	}
	status := dom.StatusOpen
	if in.Status != nil {
		if !dom.ValidStatus(*in.Status) {
			return dom.Task{}, dom.Invalid("status", msgStatus)
		}
		status = dom.Status(*in.Status)
	}

	t, err := s.repo.Create(ctx, dom.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Status:      status,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// List validates and builds the query, then returns the matching page
// plus the unpaginated count of the same filter set.
func (s *TaskService) List(ctx context.Context, p query.Params) ([]dom.Task, int64, error) {
	spec, err := query.Build(p)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, spec.Unpaginated())
	if err != nil {
		return nil, 0, err
	}
	list, err := s.list(ctx, spec)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *TaskService) list(ctx context.Context, spec query.Spec) ([]dom.Task, error) {
	if s.cache == nil {
		return s.repo.List(ctx, spec)
	}
	key := spec.CacheKey()
	v, err, _ := s.sf.Do("list:"+key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, key); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx, spec)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, in UpdateTaskInput) (dom.Task, error) {
	var patch repo.TaskPatch
	if in.Status != nil {
		if !dom.ValidStatus(*in.Status) {
			return dom.Task{}, dom.Invalid("status", msgStatus)
		}
		st := dom.Status(*in.Status)
		patch.Status = &st
	}
	if in.Priority != nil {
		if !dom.ValidPriority(*in.Priority) {
			return dom.Task{}, dom.Invalid("priority", msgPriority)
		}
		pr := dom.Priority(*in.Priority)
		patch.Priority = &pr
	}
	if in.Title != nil {
		if !dom.ValidTitle(*in.Title) {
			return dom.Task{}, dom.Invalid("title", msgTitle)
		}
		title := strings.TrimSpace(*in.Title)
		patch.Title = &title
	}
	if in.Description != nil {
		patch.Description = in.Description
	}
	if in.DueDate != nil {
		if !dom.ValidDueDate(*in.DueDate) {
			return dom.Task{}, dom.Invalid("due_date", msgDueDate)
		}
		patch.DueDate = in.DueDate
	}
	if patch.IsEmpty() {
		return dom.Task{}, dom.Invalid("fields", msgNoFields)
	}

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Insights recomputes the workload summary from a fresh full scan on
// every call; nothing is cached, so it always reflects the latest
// committed writes.
func (s *TaskService) Insights(ctx context.Context) (insights.Insights, error) {
	tasks, err := s.repo.List(ctx, query.Spec{})
	if err != nil {
		return insights.Insights{}, err
	}
	return insights.Compute(tasks, s.now().UTC()), nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
