package model

import (
	"strings"
	"time"

	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
)

const (
	EntityName = "dialogue"

	SessionPrefixBooking  = "dialogue:booking"
	SessionPrefixAssisted = "dialogue:assisted"

	NoNotes = "No notes"
)

type State int

const (
	StateAwaitingDate State = iota
	StateAwaitingTime
	StateAwaitingNotes
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateAwaitingDate:
		return "awaiting_date"
	case StateAwaitingTime:
		return "awaiting_time"
	case StateAwaitingNotes:
		return "awaiting_notes"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

var cancelVocabulary = []string{
	"cancel",
	"restart",
	"start over",
	"reset",
	"cancelar",
	"reiniciar",
	"empezar de nuevo",
}

var emptyNotesVocabulary = map[string]struct{}{
	"no":       {},
	"none":     {},
	"nothing":  {},
	"all good": {},
	"no notes": {},
	"ninguna":  {},
	"nada":     {},
}

// Session is the booking being assembled for one user. Date holds the chosen
// day at midnight until TimePinned, then the full appointment instant.
type Session struct {
	Date       *time.Time `json:"date"`
	TimePinned bool       `json:"timePinned"`
	Notes      *string    `json:"notes"`
}

func (s Session) State() State {
	switch {
	case s.Date == nil:
		return StateAwaitingDate
	case !s.TimePinned:
		return StateAwaitingTime
	default:
		return StateAwaitingNotes
	}
}

// PinDay stores the calendar day of day, dropping any clock component.
func (s *Session) PinDay(day time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	s.Date = &midnight
	s.TimePinned = false
}

// PinTime places hour:minute on the stored day in loc.
func (s *Session) PinTime(loc *time.Location, hour, minute int) time.Time {
	day := s.Date.In(loc)
	at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	s.Date = &at
	s.TimePinned = true

	return at
}

// Resume loads an existing appointment back into a session waiting for a new
// time on the same day, carrying its notes. A day already behind now starts
// over from the date.
func Resume(record appointmentDto.AppointmentResponse, now time.Time) Session {
	session := Session{Notes: record.Notes}

	if record.ScheduledAt == nil {
		return session
	}

	day := record.ScheduledAt.In(now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return session
	}

	session.PinDay(day)

	return session
}

func IsCancel(message string) bool {
	message = strings.ToLower(message)

	for _, token := range cancelVocabulary {
		if strings.Contains(message, token) {
			return true
		}
	}

	return false
}

func NormalizeNotes(message string) string {
	notes := strings.TrimSpace(message)
	key := strings.Trim(strings.ToLower(notes), ".!¡ ")

	if _, ok := emptyNotesVocabulary[key]; ok || notes == "" {
		return NoNotes
	}

	return notes
}
