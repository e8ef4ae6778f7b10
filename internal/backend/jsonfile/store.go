// Package jsonfile implements the service.Service interface on top of a single
// pretty-printed JSON document.
//
// Reads are tolerant and writes are strict: Load falls back to an empty store
// when the file is missing or malformed, while every failed write is returned
// to the caller. Each mutation rewrites the whole file in place (truncate and
// write); there is no locking and no atomic rename, so the last writer wins.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/afero"

	"todo/internal/logging"
	"todo/internal/service"
)

// FileMode is the permission used when the task file is created.
const FileMode = 0644

// ErrNoFile is returned by Open when the task file does not exist.
var ErrNoFile = errors.New("task file does not exist")

// LoadError describes why an existing task file could not be loaded.
type LoadError struct {
	Op   string // "read" or "decode"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// document is the on-disk shape.
type document struct {
	Tasks []service.Task `json:"tasks"`
}

// Store is an ordered, file-backed task list.
// It is not safe for concurrent use.
type Store struct {
	fs     afero.Fs
	path   string
	tasks  []service.Task
	saves  int
	logger *slog.Logger
}

var _ service.Service = (*Store)(nil)

// New returns an empty store that will persist to path.
// Nothing is written until the first mutation.
func New(fsys afero.Fs, path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		fs:     fsys,
		path:   path,
		tasks:  []service.Task{},
		logger: logger,
	}
}

// Open reads the task file at path.
// It returns ErrNoFile if the file is absent, or a *LoadError if the file
// cannot be read or does not match the task file schema.
func Open(fsys afero.Fs, path string, logger *slog.Logger) (*Store, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoFile
		}
		return nil, &LoadError{Op: "read", Path: path, Err: err}
	}

	if err := validate(data); err != nil {
		return nil, &LoadError{Op: "decode", Path: path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Op: "decode", Path: path, Err: err}
	}

	s := New(fsys, path, logger)
	if doc.Tasks != nil {
		s.tasks = doc.Tasks
	}
	return s, nil
}

// Load is Open with every failure collapsed into an empty store.
// It never fails; the reason for a fallback is logged at debug level.
func Load(fsys afero.Fs, path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}

	s, err := Open(fsys, path, logger)
	switch {
	case err == nil:
		logger.Debug("loaded task file", "path", path, "tasks", len(s.tasks))
		return s
	case errors.Is(err, ErrNoFile):
		logger.Debug("no task file, starting empty", "path", path)
	default:
		logger.Debug("unusable task file, starting empty", "path", path, "err", err)
	}
	return New(fsys, path, logger)
}

// Saves returns how many times this store has written the task file.
func (s *Store) Saves() int {
	return s.saves
}

// Save overwrites the task file with the full current store.
func (s *Store) Save() error {
	// Titles are written as typed; Encode appends the trailing newline.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Tasks: s.tasks}); err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data := buf.Bytes()

	if err := afero.WriteFile(s.fs, s.path, data, FileMode); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	s.saves++
	s.logger.Debug("saved task file", "path", s.path, "tasks", len(s.tasks), "bytes", len(data))
	return nil
}

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result, nil
}

// CreateTask implements service.Service.
// The ID is len+1, which can repeat an existing ID after a removal.
func (s *Store) CreateTask(ctx context.Context, title string) (service.Task, error) {
	if err := ctx.Err(); err != nil {
		return service.Task{}, err
	}
	task := service.Task{
		ID:    uint64(len(s.tasks)) + 1,
		Title: title,
	}
	s.tasks = append(s.tasks, task)
	if err := s.Save(); err != nil {
		return task, err
	}
	return task, nil
}

// CompleteTask implements service.Service.
func (s *Store) CompleteTask(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return service.ErrNotFound
	}
	s.tasks[i].Done = true
	return s.Save()
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return service.ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.Save()
}

// indexOf returns the position of the first task with the given ID, or -1.
func (s *Store) indexOf(id uint64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
