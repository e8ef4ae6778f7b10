// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It follows the same ID and lookup rules as the file-backed store and counts
// how many times a mutation would have been persisted.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task
	saves int
	calls int

	// Error injection for testing
	ListTasksErr    error
	CreateTaskErr   error
	CompleteTaskErr error
	DeleteTaskErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task without counting a save.
func (f *FakeService) AddTask(id uint64, title string, done bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Done: done})
}

// Tasks returns a copy of the current tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Saves returns how many mutations were persisted.
func (f *FakeService) Saves() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.saves
}

// Calls returns how many service methods were invoked.
func (f *FakeService) Calls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	task := service.Task{ID: uint64(len(f.tasks)) + 1, Title: title}
	f.tasks = append(f.tasks, task)
	if f.CreateTaskErr != nil {
		return task, f.CreateTaskErr
	}
	f.saves++
	return task, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Done = true
			if f.CompleteTaskErr != nil {
				return f.CompleteTaskErr
			}
			f.saves++
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			if f.DeleteTaskErr != nil {
				return f.DeleteTaskErr
			}
			f.saves++
			return nil
		}
	}
	return service.ErrNotFound
}
