package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/countdown/internal/model"
)

// JSON-backed storage for event definitions. Single file, human-readable.
// No locking; fine for a local single-user CLI.

const dataFileName = "countdowns.json"

var (
	ErrNotFound  = errors.New("event not found")
	ErrDuplicate = errors.New("event already exists")
)

type Store struct {
	path string
}

// Open uses dir for the data file, creating it if needed. An empty dir
// means the working directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: filepath.Join(dir, dataFileName)}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load() ([]model.Event, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var events []model.Event
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return events, nil
}

func (s *Store) Save(events []model.Event) error {
	b, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Add appends ev, filling in ID and CreatedAt when missing. Names are
// unique, ignoring case.
func (s *Store) Add(ev model.Event) (model.Event, error) {
	events, err := s.Load()
	if err != nil {
		return model.Event{}, err
	}
	ev.Name = strings.TrimSpace(ev.Name)
	if ev.Name == "" {
		return model.Event{}, errors.New("empty name")
	}
	for _, e := range events {
		if strings.EqualFold(e.Name, ev.Name) {
			return model.Event{}, fmt.Errorf("%w: %q", ErrDuplicate, ev.Name)
		}
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	events = append(events, ev)
	if err := s.Save(events); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// Find resolves ref as a 1-based index or a case-insensitive name.
func (s *Store) Find(ref string) (model.Event, error) {
	events, err := s.Load()
	if err != nil {
		return model.Event{}, err
	}
	i, err := index(events, ref)
	if err != nil {
		return model.Event{}, err
	}
	return events[i], nil
}

// Remove deletes the event ref resolves to and returns it.
func (s *Store) Remove(ref string) (model.Event, error) {
	events, err := s.Load()
	if err != nil {
		return model.Event{}, err
	}
	i, err := index(events, ref)
	if err != nil {
		return model.Event{}, err
	}
	ev := events[i]
	events = append(events[:i], events[i+1:]...)
	if err := s.Save(events); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

func index(events []model.Event, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(events) {
			return 0, fmt.Errorf("%w: index out of range: have %d, got %d", ErrNotFound, len(events), n)
		}
		return n - 1, nil
	}
	for i, e := range events {
		if strings.EqualFold(e.Name, ref) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, ref)
}
