// Package service defines the backend-agnostic interface for task operations.
package service

import "fmt"

// Task represents a single task item.
//
// ID is assigned as the task count plus one at creation time, so it is not
// guaranteed to be unique once tasks have been removed.
type Task struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (t Task) String() string {
	status := "pending"
	if t.Done {
		status = "done"
	}
	return fmt.Sprintf("%d [%s] %q", t.ID, status, t.Title)
}
