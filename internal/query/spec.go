// Package query builds the immutable specification a task store
// executes: which filters apply, in what order rows come back, and
// how the result is paginated. Values are never rendered into SQL
// here; stores bind them positionally.
package query

import (
	"strconv"
	"strings"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
)

// Sort tokens accepted on the list endpoint.
const (
	SortDueDateAsc  = "due_date_asc"
	SortDueDateDesc = "due_date_desc"
	SortDueDate     = "due_date"
)

// Field that an OrderBy term sorts on.
type Field string

const (
	FieldDueDate   Field = "due_date"
	FieldCreatedAt Field = "created_at"
)

// OrderBy is one term of the ordering.
type OrderBy struct {
	Field Field
	Desc  bool
}

// Params carries the raw, untrusted list parameters as they arrive
// from the transport. Empty string means "not supplied".
type Params struct {
	Status   string
	Priority string
	Sort     string
	Order    string
	Limit    string
	Offset   string
}

// Spec is the validated query specification. Filters combine with
// AND. Offset is only meaningful when Limit > 0: an offset supplied
// without a usable limit is never applied.
type Spec struct {
	Status   *dom.Status
	Priority *dom.Priority
	Order    []OrderBy
	Limit    int // 0 = no limit
	Offset   int // applied only when Limit > 0
}

// Build validates p and composes a Spec. An invalid filter value is
// an error, never a silent match-all.
func Build(p Params) (Spec, error) {
	var spec Spec

	if p.Status != "" {
		if !dom.ValidStatus(p.Status) {
			return Spec{}, dom.Invalid("status", "Invalid status filter. Use 'Open', 'InProgress', or 'Done'.")
		}
		st := dom.Status(p.Status)
		spec.Status = &st
	}

	if p.Priority != "" {
		if !dom.ValidPriority(p.Priority) {
			return Spec{}, dom.Invalid("priority", "Invalid priority filter. Use 'Low', 'Medium', or 'High'.")
		}
		pr := dom.Priority(p.Priority)
		spec.Priority = &pr
	}

	spec.Order = orderTerms(p.Sort, p.Order)

	// Limit applies only when it parses as a number > 0. Offset applies
	// only on top of a usable limit and when it parses as a number >= 0.
	if n, err := strconv.Atoi(strings.TrimSpace(p.Limit)); err == nil && n > 0 {
		spec.Limit = n
		if off, err := strconv.Atoi(strings.TrimSpace(p.Offset)); err == nil && off >= 0 {
			spec.Offset = off
		}
	}

	return spec, nil
}

// orderTerms resolves the sort mode. Precedence: the explicit
// due_date_asc / due_date_desc tokens, then the generic due_date
// token with an order direction (anything but "desc" means asc),
// then the default due_date asc with created_at asc as tie-break.
func orderTerms(sort, order string) []OrderBy {
	switch sort {
	case SortDueDateAsc:
		return []OrderBy{{Field: FieldDueDate}}
	case SortDueDateDesc:
		return []OrderBy{{Field: FieldDueDate, Desc: true}}
	case SortDueDate:
		desc := strings.EqualFold(order, "desc")
		return []OrderBy{{Field: FieldDueDate, Desc: desc}}
	}
	return []OrderBy{{Field: FieldDueDate}, {Field: FieldCreatedAt}}
}

// Unpaginated returns a copy of s without limit and offset, for
// counting the full filtered set.
func (s Spec) Unpaginated() Spec {
	s.Limit = 0
	s.Offset = 0
	return s
}

// CacheKey is a canonical string form of the spec, used to key cached
// list results.
func (s Spec) CacheKey() string {
	var b strings.Builder
	if s.Status != nil {
		b.WriteString("s=")
		b.WriteString(string(*s.Status))
	}
	b.WriteByte(';')
	if s.Priority != nil {
		b.WriteString("p=")
		b.WriteString(string(*s.Priority))
	}
	b.WriteByte(';')
	for _, o := range s.Order {
		b.WriteString(string(o.Field))
		if o.Desc {
			b.WriteString(" desc")
		}
		b.WriteByte(',')
	}
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(s.Limit))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(s.Offset))
	return b.String()
}
