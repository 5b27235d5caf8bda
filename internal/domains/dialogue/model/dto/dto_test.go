package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
	assistantModel "nutrisur/internal/domains/assistant/model"
	"nutrisur/internal/domains/dialogue/model"
	"nutrisur/internal/domains/dialogue/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSession(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
	notes := "first visit"

	tests := []struct {
		name    string
		session model.Session
		want    dto.BookingData
	}{
		{
			name:    "empty session uses placeholders",
			session: model.Session{},
			want:    dto.BookingData{Date: "pending", Time: "pending", Notes: "-"},
		},
		{
			name:    "day chosen, time pending",
			session: model.Session{Date: &day},
			want:    dto.BookingData{Date: "2025-06-02", Time: "pending", Notes: "-"},
		},
		{
			name:    "time pinned with notes",
			session: model.Session{Date: &at, TimePinned: true, Notes: &notes},
			want:    dto.BookingData{Date: "2025-06-02", Time: "17:30", Notes: "first visit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, &tt.want, dto.FromSession(tt.session, time.UTC))
		})
	}
}

func TestFromSlots(t *testing.T) {
	date := "2025-06-02"

	data := dto.FromSlots(assistantModel.BookingSlots{Date: &date})

	assert.Equal(t, &dto.BookingData{Date: "2025-06-02", Time: "pending", Notes: "-"}, data)
}

func TestFromAppointment(t *testing.T) {
	notes := "No notes"

	data := dto.FromAppointment(appointmentDto.AppointmentResponse{
		ID:     "a1",
		Status: "pending",
		Date:   "2025-06-02",
		Time:   "17:30",
		Notes:  &notes,
	})

	assert.Equal(t, &dto.BookingData{ID: "a1", Status: "pending", Date: "2025-06-02", Time: "17:30", Notes: "No notes"}, data)
}

func TestReply_JSONShape(t *testing.T) {
	raw, err := json.Marshal(dto.Reply{Status: dto.StatusReset, BotReply: "done"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"status":"reset","botReply":"done","bookingData":null}`, string(raw))
}
