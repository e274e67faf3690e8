package store

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/roach88/taskcli/internal/task"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "tasks.json"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store is the exclusive in-memory owner of the task collection for a
// process run, backed by a single file.
//
// All methods are safe for concurrent use. They are mutually exclusive with
// each other: one mutex is held for the whole call, including file I/O.
type Store struct {
	mu sync.Mutex

	fs     afero.Fs
	path   string
	format Format
	clock  task.Clock
	logger *slog.Logger

	tasks   []task.Task
	loadErr error
}

// ErrIDsExhausted is returned by Insert when the largest stored id is the
// largest int64, so no greater id exists.
var ErrIDsExhausted = errors.New("no task id left above the largest stored id")

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem holding the backing file. Defaults to the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithClock sets the clock used to stamp UpdatedAt. Defaults to
// task.SystemClock.
func WithClock(c task.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger for load diagnostics and write events.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithFormat overrides the format derived from the path extension. The
// empty Format keeps the derived one.
func WithFormat(f Format) Option {
	return func(s *Store) {
		if f != "" {
			s.format = f
		}
	}
}

// Open creates a store backed by path and loads the collection from it.
//
// Open never fails. A missing file yields an empty store. A file that cannot
// be read, parsed or validated is logged, left untouched on disk, and also
// yields an empty store; LoadError reports what went wrong. The next
// successful mutation overwrites it.
func Open(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{
		fs:     afero.NewOsFs(),
		path:   path,
		format: FormatForPath(path),
		clock:  task.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		s.loadErr = err
		s.logger.Warn("could not load tasks, starting with an empty list",
			"path", s.path,
			"error", err)
		tasks = []task.Task{}
	}
	s.tasks = tasks
	s.logger.Debug("tasks loaded", "path", s.path, "count", len(s.tasks))

	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// LoadError returns the error that caused Open to discard the backing file,
// or nil if it was loaded (or absent).
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// NextID returns the id the next Insert would assign: one more than the
// largest id present, or 1 when there is none. It returns 0 when the
// largest id present is math.MaxInt64.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.nextID()
	if !ok {
		return 0
	}
	return id
}

// Insert assigns the next id to t, appends it and rewrites the file.
//
// The returned task carries the final id and timestamps. If the write fails
// the task stays in memory and is returned together with a
// *PersistenceError. Inserting a task that already has an id returns the
// task.IsInvalidState error and changes nothing, as does an Insert after
// the id space is used up (ErrIDsExhausted).
func (s *Store) Insert(t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.nextID()
	if !ok {
		return task.Task{}, ErrIDsExhausted
	}
	stored, err := t.AssignID(id, s.clock.Now())
	if err != nil {
		return task.Task{}, err
	}
	s.tasks = append(s.tasks, stored)

	return stored, s.persist()
}

// GetAll returns a copy of the collection in store order.
func (s *Store) GetAll() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]task.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

// FindByID returns the task with the given id.
func (s *Store) FindByID(id int64) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// UpdateDescriptionByID replaces the description of the task with the given
// id and rewrites the file. It does nothing if there is no such task.
func (s *Store) UpdateDescriptionByID(id int64, description string) error {
	return s.update(id, func(t task.Task) task.Task {
		return t.WithDescription(description, s.clock.Now())
	})
}

// UpdateStatusByID sets the status of the task with the given id and
// rewrites the file. Any status may replace any other. It does nothing if
// there is no such task.
func (s *Store) UpdateStatusByID(id int64, status task.Status) error {
	return s.update(id, func(t task.Task) task.Task {
		return t.WithStatus(status, s.clock.Now())
	})
}

// DeleteByID removes every task with the given id and rewrites the file.
// The file is rewritten even when nothing matched.
func (s *Store) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.HasID() || t.ID != id {
			kept = append(kept, t)
		}
	}
	// Clear the tail so removed values are not retained by the backing array.
	clear(s.tasks[len(kept):])
	s.tasks = kept

	return s.persist()
}

// update applies fn to the task with the given id, keeping its position.
func (s *Store) update(id int64, fn func(task.Task) task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i] = fn(s.tasks[i])

	return s.persist()
}

// nextID reports false when highest+1 would overflow. Must be called with
// mu held.
func (s *Store) nextID() (int64, bool) {
	var highest int64
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	if highest == math.MaxInt64 {
		return 0, false
	}
	return highest + 1, true
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.HasID() && t.ID == id {
			return i
		}
	}
	return -1
}

// load reads and decodes the backing file. Must be called with mu held.
func (s *Store) load() ([]task.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: OpLoad, Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []task.Task{}, nil
	}

	doc, err := s.format.toJSON(data)
	if err != nil {
		return nil, &PersistenceError{Op: OpDecode, Path: s.path, Err: err}
	}
	sch, err := newSchema()
	if err != nil {
		return nil, &PersistenceError{Op: OpValidate, Path: s.path, Err: err}
	}
	if err := sch.validate(filepath.Base(s.path), doc); err != nil {
		return nil, &PersistenceError{Op: OpValidate, Path: s.path, Err: err}
	}

	records, err := s.format.decode(data)
	if err != nil {
		return nil, &PersistenceError{Op: OpDecode, Path: s.path, Err: err}
	}
	return fromRecords(records), nil
}

// persist rewrites the backing file with the full collection. Must be called
// with mu held.
func (s *Store) persist() error {
	data, err := s.format.encode(toRecords(s.tasks))
	if err != nil {
		return s.persistFailed(&PersistenceError{Op: OpEncode, Path: s.path, Err: err})
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return s.persistFailed(&PersistenceError{Op: OpWrite, Path: s.path, Err: err})
	}

	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.Must(uuid.NewV7()).String()+".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		s.removeTemp(tmp)
		return s.persistFailed(&PersistenceError{Op: OpWrite, Path: s.path, Err: err})
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		s.removeTemp(tmp)
		return s.persistFailed(&PersistenceError{Op: OpWrite, Path: s.path, Err: err})
	}

	s.logger.Debug("tasks saved", "path", s.path, "count", len(s.tasks))
	return nil
}

func (s *Store) persistFailed(err *PersistenceError) error {
	s.logger.Error("could not save tasks", "path", s.path, "error", err.Err)
	return err
}

func (s *Store) removeTemp(path string) {
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("could not remove temporary file", "path", path, "error", err)
	}
}
