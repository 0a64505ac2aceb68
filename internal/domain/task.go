package domain

import (
	"regexp"
	"strings"
	"time"
)

// Priority of a task. Stored and exchanged as the literal string.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status of a task.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Priorities lists every valid priority, in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is the domain entity. Does not depend on Gin, Postgres or Redis.
// DueDate is kept as the raw "YYYY-MM-DD" string: only the shape is
// validated, not calendar validity, so it cannot be a time.Time.
type Task struct {
	ID          int64
	Title       string
	Description string
	Priority    Priority
	DueDate     string
	Status      Status
	CreatedAt   time.Time
}

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidPriority reports whether s is exactly one of Low, Medium, High.
// Case-sensitive, no normalization.
func ValidPriority(s string) bool {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is exactly one of Open, InProgress, Done.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ValidDueDate reports whether s matches YYYY-MM-DD. The date is not
// checked against the calendar: "2024-02-30" passes.
func ValidDueDate(s string) bool {
	return dueDatePattern.MatchString(s)
}

// ValidTitle reports whether s is non-empty after trimming whitespace.
func ValidTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}
