package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

// Store is the durable, chronologically addressed collection of
// appointments. Positions passed to DeleteAtPosition are 1-based indexes
// into the sorted view List returns, recomputed on every call. Two callers
// interleaving List and DeleteAtPosition can therefore disagree on what
// "position n" is if a write lands between the calls; the position-based
// contract is kept for compatibility with the bot's numbered listing.
type Store interface {
	Add(draft *domain.Draft) (*domain.Appointment, error)
	List() ([]*domain.Appointment, error)
	ListInRange(start, end time.Time) ([]*domain.Appointment, error)
	DeleteAtPosition(n int) (*domain.Appointment, error)
}

// sortChronological orders appointments by (date, time) ascending. The sort
// is stable so equal keys keep their on-disk order.
func sortChronological(appointments []*domain.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartTime().Before(appointments[j].StartTime())
	})
}

// dayOf truncates a moment to its calendar day, normalized to UTC so days
// compare independently of the caller's zone.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// filterRange returns the appointments whose date falls inside the
// inclusive day-granularity window. Time of day on the boundary days is
// ignored.
func filterRange(appointments []*domain.Appointment, start, end time.Time) []*domain.Appointment {
	first, last := dayOf(start), dayOf(end)

	out := make([]*domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		day := a.Day()
		if !day.Before(first) && !day.After(last) {
			out = append(out, a)
		}
	}
	return out
}

// removeAtPosition deletes the appointment at 1-based position n of the
// chronologically sorted view, returning it and the remaining collection in
// its original insertion order.
func removeAtPosition(appointments []*domain.Appointment, n int) (*domain.Appointment, []*domain.Appointment, error) {
	if len(appointments) == 0 {
		return nil, nil, errors.New("no appointments to delete")
	}
	if n < 1 || n > len(appointments) {
		return nil, nil, fmt.Errorf("invalid appointment number %d: valid range is 1-%d", n, len(appointments))
	}

	sorted := append([]*domain.Appointment(nil), appointments...)
	sortChronological(sorted)
	target := sorted[n-1]

	remaining := make([]*domain.Appointment, 0, len(appointments)-1)
	for _, a := range appointments {
		if a.ID != target.ID {
			remaining = append(remaining, a)
		}
	}
	return target, remaining, nil
}
