// Package persistence holds small file-backed stores for state that must
// survive across CLI invocations.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/studiodesk/internal/ports/secondary"
)

// FileTimerStore persists running work timers in a JSON file so a timer
// started in one process can be stopped in another. Keys are
// "<ownerType>/<ownerID>", values RFC3339 start instants.
type FileTimerStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTimerStore creates a timer store backed by the given file. The file
// is created lazily on the first Start.
func NewFileTimerStore(path string) *FileTimerStore {
	return &FileTimerStore{path: path}
}

func timerKey(ownerType, ownerID string) string {
	return ownerType + "/" + ownerID
}

func (s *FileTimerStore) Start(ownerType, ownerID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.load()
	if err != nil {
		return err
	}

	key := timerKey(ownerType, ownerID)
	if _, running := timers[key]; running {
		return fmt.Errorf("timer already running for %s %s", ownerType, ownerID)
	}
	timers[key] = at.Format(time.RFC3339)
	return s.save(timers)
}

func (s *FileTimerStore) Get(ownerType, ownerID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.load()
	if err != nil {
		return time.Time{}, false, err
	}

	raw, ok := timers[timerKey(ownerType, ownerID)]
	if !ok {
		return time.Time{}, false, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse timer start: %w", err)
	}
	return at, true, nil
}

func (s *FileTimerStore) Clear(ownerType, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timers, err := s.load()
	if err != nil {
		return err
	}
	delete(timers, timerKey(ownerType, ownerID))
	return s.save(timers)
}

func (s *FileTimerStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read timer file: %w", err)
	}

	timers := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &timers); err != nil {
			return nil, fmt.Errorf("failed to parse timer file: %w", err)
		}
	}
	return timers, nil
}

func (s *FileTimerStore) save(timers map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create timer directory: %w", err)
	}
	data, err := json.MarshalIndent(timers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timers: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timer file: %w", err)
	}
	return nil
}

var _ secondary.TimerStore = (*FileTimerStore)(nil)
