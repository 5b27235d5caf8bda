package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	noticeDateLayout = "02/01/2006 at 15:04"
	noticeRule       = "------------------------------------------"
)

// Contact identifies the customer behind an event.
type Contact struct {
	Name  string
	Email string
	Phone string
}

func (c Contact) displayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Email != "":
		return c.Email
	default:
		return "Unknown customer"
	}
}

func (c Contact) block() string {
	phone := c.Phone
	if phone == "" {
		phone = "-"
	}

	return fmt.Sprintf("Customer: %s\nEmail: %s\nPhone: %s", c.displayName(), c.Email, phone)
}

// Notice is the message staff receive for an event.
type Notice struct {
	Subject string
	Body    string
}

// Render builds the staff notice for event. It reports false for events staff are not told about.
func Render(event Event, contact Contact, loc *time.Location) (Notice, bool) {
	switch event.Type {
	case EventAppointmentCreated, EventAppointmentConfirmed:
		return Notice{
			Subject: "New appointment: " + contact.displayName(),
			Body:    appointmentBody("You have a new appointment booked!", event, contact, loc),
		}, true
	case EventAppointmentCancelled:
		return Notice{
			Subject: "Appointment cancelled: " + contact.displayName(),
			Body:    appointmentBody("An appointment was cancelled.", event, contact, loc),
		}, true
	case EventOrderPending:
		total := 0.0
		if event.Total != nil {
			total = *event.Total
		}

		return Notice{
			Subject: "New order received #" + event.EntityID,
			Body: strings.Join([]string{
				"You have a new confirmed sale.",
				noticeRule,
				contact.block(),
				noticeRule,
				event.Summary,
				noticeRule,
				fmt.Sprintf("Order total: %.2f", total),
			}, "\n"),
		}, true
	case EventUserRegistered:
		return Notice{
			Subject: "New user registered: " + contact.displayName(),
			Body:    "A new customer signed up.\n" + contact.block(),
		}, true
	default:
		return Notice{}, false
	}
}

func appointmentBody(headline string, event Event, contact Contact, loc *time.Location) string {
	when := "Date to be confirmed"
	if event.ScheduledAt != nil {
		when = event.ScheduledAt.In(loc).Format(noticeDateLayout)
	}

	notes := "No notes"
	if event.Notes != nil && *event.Notes != "" {
		notes = *event.Notes
	}

	return strings.Join([]string{
		headline,
		noticeRule,
		contact.block(),
		noticeRule,
		"Date and time: " + when,
		"Status: " + event.Status,
		"Notes: " + notes,
	}, "\n")
}
