package domain

import (
	"fmt"
	"time"
)

// Canonical layouts every accepted input format is normalized to before
// storage.
const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04"
)

// Appointment is a stored calendar entry. Date and Time always hold the
// canonical DD-MM-YYYY and HH:MM forms.
type Appointment struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ContactName string    `json:"contactName"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is a parsed appointment that has not been stored yet. The store
// assigns ID and CreatedAt when it is added.
type Draft struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	ContactName string `json:"contactName"`
	Category    string `json:"category"`
}

// StartTime combines the canonical date and time into a single moment,
// used for chronological ordering.
func (a *Appointment) StartTime() time.Time {
	t, err := time.Parse(DateLayout+" "+TimeLayout, a.Date+" "+a.Time)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Day returns the appointment's calendar day at midnight, used for
// day-granularity range filtering.
func (a *Appointment) Day() time.Time {
	t, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Format returns the display line used in bot replies and reminders.
func (a *Appointment) Format() string {
	return fmt.Sprintf("%s %s - %s (%s)", a.Date, a.Time, a.ContactName, a.Category)
}

// FormatList renders a numbered chronological list of appointments. The
// numbers are the positions /delcal accepts.
func FormatList(appointments []*Appointment) string {
	if len(appointments) == 0 {
		return "No appointments found."
	}

	out := ""
	for i, a := range appointments {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%d. %s", i+1, a.Format())
	}
	return out
}
