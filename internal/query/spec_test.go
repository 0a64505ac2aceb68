package query

import (
	"errors"
	"testing"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
)

func TestBuildFilters(t *testing.T) {
	spec, err := Build(Params{Status: "Done", Priority: "High"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if spec.Status == nil || *spec.Status != dom.StatusDone {
		t.Errorf("status filter = %v, want Done", spec.Status)
	}
	if spec.Priority == nil || *spec.Priority != dom.PriorityHigh {
		t.Errorf("priority filter = %v, want High", spec.Priority)
	}
}

func TestBuildRejectsInvalidFilters(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		field  string
	}{
		{"bad status", Params{Status: "done"}, "status"},
		{"bad status phrase", Params{Status: "In Progress"}, "status"},
		{"bad priority", Params{Priority: "urgent"}, "priority"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(c.params)
			var ve *dom.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Build(%+v) err = %v, want ValidationError", c.params, err)
			}
			if ve.Field != c.field {
				t.Errorf("field = %q, want %q", ve.Field, c.field)
			}
		})
	}
}

func TestBuildSortPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		want   []OrderBy
	}{
		{
			"explicit asc wins over order",
			Params{Sort: "due_date_asc", Order: "desc"},
			[]OrderBy{{Field: FieldDueDate}},
		},
		{
			"explicit desc",
			Params{Sort: "due_date_desc"},
			[]OrderBy{{Field: FieldDueDate, Desc: true}},
		},
		{
			"generic token with desc",
			Params{Sort: "due_date", Order: "DESC"},
			[]OrderBy{{Field: FieldDueDate, Desc: true}},
		},
		{
			"generic token with junk order defaults asc",
			Params{Sort: "due_date", Order: "sideways"},
			[]OrderBy{{Field: FieldDueDate}},
		},
		{
			"unknown token falls back to stable default",
			Params{Sort: "priority"},
			[]OrderBy{{Field: FieldDueDate}, {Field: FieldCreatedAt}},
		},
		{
			"no sort at all",
			Params{},
			[]OrderBy{{Field: FieldDueDate}, {Field: FieldCreatedAt}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := Build(c.params)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(spec.Order) != len(c.want) {
				t.Fatalf("order = %v, want %v", spec.Order, c.want)
			}
			for i := range c.want {
				if spec.Order[i] != c.want[i] {
					t.Errorf("order[%d] = %v, want %v", i, spec.Order[i], c.want[i])
				}
			}
		})
	}
}

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		name       string
		params     Params
		limit, off int
	}{
		{"limit and offset", Params{Limit: "2", Offset: "3"}, 2, 3},
		{"limit alone", Params{Limit: "5"}, 5, 0},
		{"offset without limit never applies", Params{Offset: "3"}, 0, 0},
		{"zero limit ignored", Params{Limit: "0", Offset: "3"}, 0, 0},
		{"negative limit ignored", Params{Limit: "-1"}, 0, 0},
		{"non-numeric limit ignored", Params{Limit: "many", Offset: "3"}, 0, 0},
		{"negative offset ignored", Params{Limit: "2", Offset: "-1"}, 2, 0},
		{"non-numeric offset ignored", Params{Limit: "2", Offset: "x"}, 2, 0},
		{"zero offset", Params{Limit: "2", Offset: "0"}, 2, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := Build(c.params)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if spec.Limit != c.limit || spec.Offset != c.off {
				t.Errorf("limit/offset = %d/%d, want %d/%d", spec.Limit, spec.Offset, c.limit, c.off)
			}
		})
	}
}

func TestUnpaginated(t *testing.T) {
	spec, err := Build(Params{Status: "Open", Limit: "2", Offset: "4"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	up := spec.Unpaginated()
	if up.Limit != 0 || up.Offset != 0 {
		t.Errorf("Unpaginated kept limit/offset: %d/%d", up.Limit, up.Offset)
	}
	if up.Status == nil || *up.Status != dom.StatusOpen {
		t.Errorf("Unpaginated dropped the status filter")
	}
	if spec.Limit != 2 || spec.Offset != 4 {
		t.Errorf("Unpaginated mutated the original spec")
	}
}

func TestCacheKeyDistinguishesSpecs(t *testing.T) {
	a, _ := Build(Params{Status: "Open", Limit: "2"})
	b, _ := Build(Params{Status: "Open", Limit: "2", Offset: "2"})
	c, _ := Build(Params{Status: "Open", Limit: "2"})
	if a.CacheKey() == b.CacheKey() {
		t.Errorf("different specs share cache key %q", a.CacheKey())
	}
	if a.CacheKey() != c.CacheKey() {
		t.Errorf("equal specs produced different keys: %q vs %q", a.CacheKey(), c.CacheKey())
	}
}
