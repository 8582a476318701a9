package calendar

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

// MemoryStore holds the collection in memory. It implements the same
// contract as FileStore and is the implementation tests and dry runs
// construct instead of flipping a global switch.
type MemoryStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Add(draft *domain.Draft) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt := &domain.Appointment{
		ID:          uuid.NewString(),
		Date:        draft.Date,
		Time:        draft.Time,
		ContactName: draft.ContactName,
		Category:    draft.Category,
		CreatedAt:   s.now(),
	}
	s.appointments = append(s.appointments, appt)
	return appt, nil
}

func (s *MemoryStore) List() ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]*domain.Appointment(nil), s.appointments...)
	sortChronological(sorted)
	return sorted, nil
}

func (s *MemoryStore) ListInRange(start, end time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := filterRange(s.appointments, start, end)
	sortChronological(matched)
	return matched, nil
}

func (s *MemoryStore) DeleteAtPosition(n int) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, remaining, err := removeAtPosition(s.appointments, n)
	if err != nil {
		return nil, err
	}
	s.appointments = remaining
	return deleted, nil
}
