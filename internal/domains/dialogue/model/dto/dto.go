package dto

import (
	"time"

	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
	assistantModel "nutrisur/internal/domains/assistant/model"
	"nutrisur/internal/domains/dialogue/model"
)

const (
	StatusOK        = "ok"
	StatusFinalized = "finalized"
	StatusReset     = "reset"
	StatusError     = "error"

	PlaceholderPending = "pending"
	PlaceholderEmpty   = "-"

	// TechnicalErrorReply is the marker returned when a request cannot be processed at all.
	TechnicalErrorReply = "Technical error: the message could not be processed. Please try again."
)

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type BookingData struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Notes  string `json:"notes"`
}

type Reply struct {
	Status      string       `json:"status"`
	BotReply    string       `json:"botReply"`
	BookingData *BookingData `json:"bookingData"`
}

func TechnicalError() Reply {
	return Reply{Status: StatusError, BotReply: TechnicalErrorReply}
}

// FromSession echoes the slots gathered so far.
func FromSession(session model.Session, loc *time.Location) *BookingData {
	data := &BookingData{
		Date:  PlaceholderPending,
		Time:  PlaceholderPending,
		Notes: PlaceholderEmpty,
	}

	if session.Date != nil {
		at := session.Date.In(loc)
		data.Date = at.Format(appointmentDto.DateLayout)

		if session.TimePinned {
			data.Time = at.Format(appointmentDto.TimeLayout)
		}
	}

	if session.Notes != nil {
		data.Notes = *session.Notes
	}

	return data
}

func FromSlots(slots assistantModel.BookingSlots) *BookingData {
	data := &BookingData{
		Date:  PlaceholderPending,
		Time:  PlaceholderPending,
		Notes: PlaceholderEmpty,
	}

	if slots.Date != nil {
		data.Date = *slots.Date
	}

	if slots.Time != nil {
		data.Time = *slots.Time
	}

	if slots.Notes != nil {
		data.Notes = *slots.Notes
	}

	return data
}

func FromAppointment(appointment appointmentDto.AppointmentResponse) *BookingData {
	data := &BookingData{
		ID:     appointment.ID,
		Status: appointment.Status,
		Date:   appointment.Date,
		Time:   appointment.Time,
		Notes:  PlaceholderEmpty,
	}

	if appointment.Notes != nil {
		data.Notes = *appointment.Notes
	}

	return data
}
