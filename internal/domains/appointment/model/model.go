package model

import (
	"slices"
	"time"

	"nutrisur/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldScheduledAt = "scheduled_at"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// transitions lists, per target status, the statuses it may be reached from.
var transitions = map[string][]string{
	StatusConfirmed: {StatusPending},
	StatusCancelled: {StatusDraft, StatusPending, StatusConfirmed},
	StatusCompleted: {StatusPending, StatusConfirmed},
}

type Appointment struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	ScheduledAt *time.Time `db:"scheduled_at"`
	Status      string     `db:"status"`
	Notes       *string    `db:"notes"`
	model.Metadata
}

func (a Appointment) CanTransitionTo(status string) bool {
	return slices.Contains(transitions[status], a.Status)
}

// IsActive reports whether the appointment still holds its slot.
func (a Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}
