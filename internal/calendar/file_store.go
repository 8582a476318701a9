package calendar

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

const calendarFileName = "calendar-data.json"

// document is the on-disk shape. Array order is insertion order; callers
// always see the recomputed chronological order instead.
type document struct {
	Appointments []*domain.Appointment `json:"appointments"`
}

// FileStore keeps the collection in a single JSON document, re-reading it
// before every operation and rewriting it whole after every mutation.
// Writes replace the file atomically via a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileStore creates the data directory and an empty calendar document if
// none exists yet.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &FileStore{
		path: filepath.Join(dataDir, calendarFileName),
		now:  time.Now,
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		if err := s.save(&document{}); err != nil {
			return nil, fmt.Errorf("initialize calendar data: %w", err)
		}
		log.Printf("Calendar data file initialized at %s", s.path)
	}

	return s, nil
}

// load reads the full document. A missing or corrupt file is treated as "no
// data yet", not an error.
func (s *FileStore) load() *document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load calendar data: %v", err)
		}
		return &document{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Calendar data corrupt, treating as empty: %v", err)
		return &document{}
	}
	return &doc
}

func (s *FileStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calendar data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write calendar data: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace calendar data: %w", err)
	}
	return nil
}

func (s *FileStore) Add(draft *domain.Draft) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	appt := &domain.Appointment{
		ID:          uuid.NewString(),
		Date:        draft.Date,
		Time:        draft.Time,
		ContactName: draft.ContactName,
		Category:    draft.Category,
		CreatedAt:   s.now(),
	}
	doc.Appointments = append(doc.Appointments, appt)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *FileStore) List() ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	sortChronological(doc.Appointments)
	return doc.Appointments, nil
}

func (s *FileStore) ListInRange(start, end time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	matched := filterRange(doc.Appointments, start, end)
	sortChronological(matched)
	return matched, nil
}

func (s *FileStore) DeleteAtPosition(n int) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	deleted, remaining, err := removeAtPosition(doc.Appointments, n)
	if err != nil {
		return nil, err
	}

	doc.Appointments = remaining
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return deleted, nil
}
