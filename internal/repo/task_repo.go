package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
	"github.com/Sravanikonapalli/task-tracker-thworks/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// TaskPatch is a partial update: nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *dom.Priority
	DueDate     *string
	Status      *dom.Status
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.DueDate == nil && p.Status == nil
}

// TaskRepo is the record store contract. Implementations must apply a
// query.Spec exactly: AND-combined filters, the given order, and
// pagination only when the spec carries a limit.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context, spec query.Spec) ([]dom.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, spec query.Spec) (int64, error)
}

const taskColumns = "id, title, description, priority, due_date, status, created_at"

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	q := `
		INSERT INTO tasks (title, description, priority, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns
	var out dom.Task
	err := r.db.QueryRow(ctx, q, t.Title, t.Description, t.Priority, t.DueDate, t.Status).Scan(
		&out.ID, &out.Title, &out.Description, &out.Priority, &out.DueDate,
		&out.Status, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, q, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.DueDate,
		&t.Status, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, ErrNotFound
	}
	return t, err
}

func (r *PGTaskRepo) List(ctx context.Context, spec query.Spec) ([]dom.Task, error) {
	sql, args := listSQL(spec)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority,
			&t.DueDate, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, patch TaskPatch) (dom.Task, error) {
	sets, args := patchSQL(patch)
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	q := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), taskColumns)
	var t dom.Task
	err := r.db.QueryRow(ctx, q, args...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.DueDate,
		&t.Status, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Task{}, ErrNotFound
	}
	return t, err
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGTaskRepo) Count(ctx context.Context, spec query.Spec) (int64, error) {
	where, args := whereSQL(spec)
	q := `SELECT COUNT(*) FROM tasks` + where
	var n int64
	err := r.db.QueryRow(ctx, q, args...).Scan(&n)
	return n, err
}

// patchSQL renders the non-nil patch fields as SET clauses with
// positional parameters, in declaration order.
func patchSQL(patch TaskPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	return sets, args
}

// whereSQL renders the spec's filters as a positional-parameter WHERE
// clause. Values travel in args, never in the SQL text.
func whereSQL(spec query.Spec) (string, []any) {
	var clauses []string
	var args []any
	if spec.Status != nil {
		args = append(args, *spec.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if spec.Priority != nil {
		args = append(args, *spec.Priority)
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func listSQL(spec query.Spec) (string, []any) {
	where, args := whereSQL(spec)
	sql := `SELECT ` + taskColumns + ` FROM tasks` + where

	var order []string
	for _, o := range spec.Order {
		col := orderColumn(o.Field)
		if col == "" {
			continue
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		order = append(order, col+dir)
	}
	if len(order) > 0 {
		sql += " ORDER BY " + strings.Join(order, ", ")
	}

	if spec.Limit > 0 {
		args = append(args, spec.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
		if spec.Offset > 0 {
			args = append(args, spec.Offset)
			sql += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}
	return sql, args
}

// orderColumn maps a spec field to its column. Anything outside the
// whitelist is dropped rather than interpolated.
func orderColumn(f query.Field) string {
	switch f {
	case query.FieldDueDate:
		return "due_date"
	case query.FieldCreatedAt:
		return "created_at"
	}
	return ""
}
