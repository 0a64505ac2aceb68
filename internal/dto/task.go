package dto

import "time"

// CreateTaskRequest is the JSON body for POST /tasks. Priority and
// status are pointers so an absent field takes the domain default
// while a present-but-invalid value is rejected. Domain validation
// happens in the service; the transport only shapes the payload.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     string  `json:"due_date"`
	Status      *string `json:"status"`
}

// UpdateTaskRequest is the JSON body for PATCH /tasks/{id}.
// nil = leave the field untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListTasksResponse carries one page of tasks plus the unpaginated
// count of the same filter set, for the UI's pager.
type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
	Total int64          `json:"total"`
}
