package bot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
	"github.com/mvdheuvel/jeevesbot/internal/parse"
)

// APIResponse is the envelope every API route answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Canonical field shapes POST /api/appointments accepts. The web form
// normalizes input with the same rules the bot uses before submitting.
var (
	canonicalDateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	canonicalTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// SetupAPI registers API routes with Basic Auth. With no users configured
// the API stays disabled.
func (b *Bot) SetupAPI() {
	if len(b.cfg.Users) == 0 {
		return
	}

	http.HandleFunc("/api/appointments", b.basicAuth(b.apiAppointments))
	http.HandleFunc("/api/appointments/", b.basicAuth(b.apiAppointmentSub))
}

// basicAuth checks credentials against the static user list. Credentials
// are accepted from the Authorization header or, for the web UI's fetch
// calls, from username/password query parameters.
func (b *Bot) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			username = r.URL.Query().Get("username")
			password = r.URL.Query().Get("password")
		}

		if username == "" || password == "" || b.cfg.Authenticate(username, password) == nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="JeevesBot API"`)
			b.jsonError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (b *Bot) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func (b *Bot) jsonCreated(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func (b *Bot) jsonError(w http.ResponseWriter, err string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err})
}

// GET  /api/appointments - chronological list
// POST /api/appointments - add with already-canonical fields
func (b *Bot) apiAppointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		appointments, err := b.store.List()
		if err != nil {
			b.jsonError(w, "Failed to fetch appointments", http.StatusInternalServerError)
			return
		}
		b.jsonResponse(w, map[string]interface{}{"appointments": appointments})

	case http.MethodPost:
		var req domain.Draft
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			b.jsonError(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		req.ContactName = strings.TrimSpace(req.ContactName)
		req.Category = strings.TrimSpace(req.Category)
		if req.Date == "" || req.Time == "" || req.ContactName == "" || req.Category == "" {
			b.jsonError(w, "All fields are required: date, time, contactName, category", http.StatusBadRequest)
			return
		}

		if !canonicalDateRe.MatchString(req.Date) {
			b.jsonError(w, "Date must be in DD-MM-YYYY format", http.StatusBadRequest)
			return
		}
		if !canonicalTimeRe.MatchString(req.Time) {
			b.jsonError(w, "Time must be in HH:MM format", http.StatusBadRequest)
			return
		}
		if _, err := parse.ParseDate(req.Date); err != nil {
			b.jsonError(w, "Invalid date", http.StatusBadRequest)
			return
		}
		if _, err := parse.ParseTime(req.Time); err != nil {
			b.jsonError(w, "Invalid time. Hours must be 00-23, minutes must be 00-59", http.StatusBadRequest)
			return
		}

		appt, err := b.store.Add(&req)
		if err != nil {
			b.jsonError(w, "Failed to add appointment", http.StatusInternalServerError)
			return
		}
		b.jsonCreated(w, map[string]interface{}{"appointment": appt})

	default:
		b.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Sub-routes of /api/appointments/:
//
//	GET    /api/appointments/week   - today + next 6 days
//	POST   /api/appointments/parse  - parse only, no persistence
//	GET    /api/appointments/export - iCalendar export
//	DELETE /api/appointments/{id}   - delete by appointment id
func (b *Bot) apiAppointmentSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/appointments/")

	switch rest {
	case "week":
		b.apiWeek(w, r)
	case "parse":
		b.apiParse(w, r)
	case "export":
		b.apiExport(w, r)
	case "":
		b.jsonError(w, "Appointment ID is required", http.StatusBadRequest)
	default:
		b.apiDelete(w, r, rest)
	}
}

func (b *Bot) apiWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		b.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	today := time.Now().In(b.cfg.Timezone)
	appointments, err := b.store.ListInRange(today, today.AddDate(0, 0, 6))
	if err != nil {
		b.jsonError(w, "Failed to fetch appointments", http.StatusInternalServerError)
		return
	}
	b.jsonResponse(w, map[string]interface{}{"appointments": appointments})
}

func (b *Bot) apiParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		b.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
		b.jsonError(w, "Input text is required", http.StatusBadRequest)
		return
	}

	draft, err := parse.ParseInput(req.Input)
	if err != nil {
		b.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.jsonResponse(w, map[string]interface{}{"appointment": draft})
}

func (b *Bot) apiDelete(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodDelete {
		b.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The store addresses deletions by position in the sorted view, so the
	// id is resolved to its current position first.
	appointments, err := b.store.List()
	if err != nil {
		b.jsonError(w, "Failed to fetch appointments", http.StatusInternalServerError)
		return
	}

	position := -1
	for i, a := range appointments {
		if a.ID == id {
			position = i + 1
			break
		}
	}
	if position == -1 {
		b.jsonError(w, "Appointment not found", http.StatusNotFound)
		return
	}

	deleted, err := b.store.DeleteAtPosition(position)
	if err != nil {
		b.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.jsonResponse(w, map[string]interface{}{"deletedAppointment": deleted})
}

// apiExport renders the whole calendar as an iCalendar document so external
// calendar apps can subscribe to it.
func (b *Bot) apiExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		b.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	appointments, err := b.store.List()
	if err != nil {
		b.jsonError(w, "Failed to fetch appointments", http.StatusInternalServerError)
		return
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//JeevesBot//Calendar//EN")

	now := time.Now().UTC()
	for _, a := range appointments {
		start, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, a.Date+" "+a.Time, b.cfg.Timezone)
		if err != nil {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, a.ID+"@jeevesbot")
		event.Props.SetText(ical.PropSummary, a.ContactName)
		event.Props.SetText(ical.PropDescription, a.Category)
		event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		b.jsonError(w, "Failed to encode calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="jeevesbot.ics"`)
	w.Write(buf.Bytes())
}
