package repo

import (
	"context"
	"errors"
	"testing"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/query"
)

func seedTask(t *testing.T, r *MemTaskRepo, title, due string, st dom.Status, pr dom.Priority) dom.Task {
	t.Helper()
	task, err := r.Create(context.Background(), dom.Task{
		Title:    title,
		Priority: pr,
		DueDate:  due,
		Status:   st,
	})
	if err != nil {
		t.Fatalf("seed %q: %v", title, err)
	}
	return task
}

func defaultSpec() query.Spec {
	return query.Spec{Order: []query.OrderBy{
		{Field: query.FieldDueDate},
		{Field: query.FieldCreatedAt},
	}}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	r := NewMemTaskRepo()
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		task := seedTask(t, r, "t", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)
		if task.ID <= 0 {
			t.Fatalf("id = %d, want > 0", task.ID)
		}
		if seen[task.ID] {
			t.Fatalf("id %d reused", task.ID)
		}
		seen[task.ID] = true
		if task.CreatedAt.IsZero() {
			t.Errorf("created_at not set")
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	r := NewMemTaskRepo()
	if _, err := r.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListDefaultOrderTieBreak(t *testing.T) {
	r := NewMemTaskRepo()
	later := seedTask(t, r, "june third", "2024-06-03", dom.StatusOpen, dom.PriorityMedium)
	first := seedTask(t, r, "created first", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)
	second := seedTask(t, r, "created second", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)

	list, err := r.List(context.Background(), defaultSpec())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []int64{first.ID, second.ID, later.ID}
	if len(list) != len(wantIDs) {
		t.Fatalf("got %d tasks, want %d", len(list), len(wantIDs))
	}
	for i, id := range wantIDs {
		if list[i].ID != id {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, id)
		}
	}
}

func TestListDueDateDesc(t *testing.T) {
	r := NewMemTaskRepo()
	seedTask(t, r, "a", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)
	seedTask(t, r, "b", "2024-06-05", dom.StatusOpen, dom.PriorityMedium)
	seedTask(t, r, "c", "2024-06-03", dom.StatusOpen, dom.PriorityMedium)

	list, err := r.List(context.Background(), query.Spec{
		Order: []query.OrderBy{{Field: query.FieldDueDate, Desc: true}},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"2024-06-05", "2024-06-03", "2024-06-01"}
	for i, due := range want {
		if list[i].DueDate != due {
			t.Errorf("list[%d].DueDate = %s, want %s", i, list[i].DueDate, due)
		}
	}
}

func TestListFiltersCombineWithAnd(t *testing.T) {
	r := NewMemTaskRepo()
	match := seedTask(t, r, "both", "2024-06-01", dom.StatusDone, dom.PriorityHigh)
	seedTask(t, r, "status only", "2024-06-01", dom.StatusDone, dom.PriorityLow)
	seedTask(t, r, "priority only", "2024-06-01", dom.StatusOpen, dom.PriorityHigh)

	done := dom.StatusDone
	high := dom.PriorityHigh
	spec := defaultSpec()
	spec.Status = &done
	spec.Priority = &high

	list, err := r.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != match.ID {
		t.Errorf("got %v, want only task %d", list, match.ID)
	}
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	r := NewMemTaskRepo()
	done := dom.StatusDone
	spec := defaultSpec()
	spec.Status = &done
	list, err := r.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d tasks, want 0", len(list))
	}
}

func TestListPagination(t *testing.T) {
	r := NewMemTaskRepo()
	dues := []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06"}
	for _, d := range dues {
		seedTask(t, r, "t "+d, d, dom.StatusOpen, dom.PriorityMedium)
	}

	spec := defaultSpec()
	spec.Limit = 2
	spec.Offset = 3
	page, err := r.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].DueDate != "2024-06-04" || page[1].DueDate != "2024-06-05" {
		t.Errorf("page = %v, want the 4th and 5th tasks", page)
	}

	// Offset without a limit is never applied: the full set comes back.
	spec = defaultSpec()
	spec.Offset = 3
	all, err := r.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(dues) {
		t.Errorf("offset without limit returned %d tasks, want %d", len(all), len(dues))
	}

	// Offset past the end yields an empty page, not an error.
	spec = defaultSpec()
	spec.Limit = 2
	spec.Offset = 100
	empty, err := r.List(context.Background(), spec)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d tasks, want 0", len(empty))
	}
}

func TestUpdateAppliesOnlyPatchFields(t *testing.T) {
	r := NewMemTaskRepo()
	orig := seedTask(t, r, "write report", "2024-06-10", dom.StatusOpen, dom.PriorityHigh)

	done := dom.StatusDone
	got, err := r.Update(context.Background(), orig.ID, TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != dom.StatusDone {
		t.Errorf("status = %s, want Done", got.Status)
	}
	if got.Title != orig.Title || got.Description != orig.Description ||
		got.Priority != orig.Priority || got.DueDate != orig.DueDate {
		t.Errorf("untouched fields changed: %+v vs %+v", got, orig)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("created_at mutated")
	}
}

func TestUpdateNotFound(t *testing.T) {
	r := NewMemTaskRepo()
	seedTask(t, r, "only", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)

	title := "new"
	if _, err := r.Update(context.Background(), 999, TaskPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	list, _ := r.List(context.Background(), defaultSpec())
	if len(list) != 1 || list[0].Title != "only" {
		t.Errorf("store changed on failed update: %v", list)
	}
}

func TestDelete(t *testing.T) {
	r := NewMemTaskRepo()
	task := seedTask(t, r, "gone", "2024-06-01", dom.StatusOpen, dom.PriorityMedium)

	if err := r.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.GetByID(context.Background(), task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted task still readable")
	}
	if err := r.Delete(context.Background(), task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestCount(t *testing.T) {
	r := NewMemTaskRepo()
	seedTask(t, r, "a", "2024-06-01", dom.StatusOpen, dom.PriorityHigh)
	seedTask(t, r, "b", "2024-06-02", dom.StatusDone, dom.PriorityHigh)
	seedTask(t, r, "c", "2024-06-03", dom.StatusOpen, dom.PriorityLow)

	n, err := r.Count(context.Background(), query.Spec{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("total = %d, want 3", n)
	}

	high := dom.PriorityHigh
	n, err = r.Count(context.Background(), query.Spec{Priority: &high})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("high = %d, want 2", n)
	}
}
