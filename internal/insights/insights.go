// Package insights derives the workload summary shown above the task
// list. Nothing here is persisted or cached: every call recomputes
// from the record set it is handed, so the numbers always reflect the
// latest committed writes.
package insights

import (
	"fmt"
	"time"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"
)

// Due-soon window: [today, today+3 days], inclusive on both ends.
const dueSoonWindowDays = 3

const dateLayout = "2006-01-02"

// DayCount is the busiest day together with how many tasks fall on it.
type DayCount struct {
	Date  string `json:"due_date"`
	Count int    `json:"count"`
}

// Insights is the derived summary of the current record set.
type Insights struct {
	TotalTasks       int                  `json:"totalTasks"`
	TotalOpen        int                  `json:"totalOpen"`
	CountsByPriority map[dom.Priority]int `json:"countsByPriority"`
	DueSoonCount     int                  `json:"dueSoonCount"`
	BusiestDay       *DayCount            `json:"busiestDay"`
	Summary          string               `json:"summary"`
}

// Compute aggregates tasks as of now. now is only used to anchor the
// due-soon window.
func Compute(tasks []dom.Task, now time.Time) Insights {
	ins := Insights{
		TotalTasks: len(tasks),
		CountsByPriority: map[dom.Priority]int{
			dom.PriorityLow:    0,
			dom.PriorityMedium: 0,
			dom.PriorityHigh:   0,
		},
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, dueSoonWindowDays)
	perDay := make(map[string]int)

	for _, t := range tasks {
		ins.CountsByPriority[t.Priority]++
		if t.DueDate != "" {
			perDay[t.DueDate]++
		}
		if t.Status == dom.StatusDone {
			continue
		}
		ins.TotalOpen++
		// Stored due dates are pattern-checked only; a value that does
		// not parse as a real date never counts as due soon.
		d, err := time.ParseInLocation(dateLayout, t.DueDate, time.UTC)
		if err != nil {
			continue
		}
		if !d.Before(today) && !d.After(windowEnd) {
			ins.DueSoonCount++
		}
	}

	ins.BusiestDay = busiest(perDay)
	ins.Summary = summarize(ins)
	return ins
}

// busiest picks the due date with the most tasks; ties go to the
// earliest date. Nil when there are no records.
func busiest(perDay map[string]int) *DayCount {
	var best *DayCount
	for date, count := range perDay {
		if best == nil || count > best.Count || (count == best.Count && date < best.Date) {
			best = &DayCount{Date: date, Count: count}
		}
	}
	return best
}

// summarize assembles the natural-language summary. Clause order is
// fixed: active count, then due-soon, then busiest day.
func summarize(ins Insights) string {
	if ins.TotalOpen == 0 {
		return "You have no active tasks — great job!"
	}
	plural := ""
	if ins.TotalOpen > 1 {
		plural = "s"
	}
	s := fmt.Sprintf("You have %d active task%s.", ins.TotalOpen, plural)
	if ins.DueSoonCount > 0 {
		s += fmt.Sprintf(" %d due within 3 days.", ins.DueSoonCount)
	}
	if ins.BusiestDay != nil {
		s += fmt.Sprintf(" Busiest day: %s (%d tasks).", ins.BusiestDay.Date, ins.BusiestDay.Count)
	}
	return s
}
