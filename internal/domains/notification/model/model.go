package model

import "time"

const (
	EntityName = "notification"

	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventOrderPending         = "order.pending"
	EventOrderCompleted       = "order.completed"
	EventUserRegistered       = "user.registered"
)

// Event is the payload published for downstream notifiers such as the admin mailer.
type Event struct {
	Type        string     `json:"type"`
	EntityID    string     `json:"entity_id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Total       *float64   `json:"total,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
