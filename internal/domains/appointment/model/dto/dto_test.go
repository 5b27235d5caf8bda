package dto_test

import (
	"testing"
	"time"

	"nutrisur/internal/domains/appointment/model"
	"nutrisur/internal/domains/appointment/model/dto"
	gModel "nutrisur/shared/model"
	"nutrisur/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	at := timezone.Now().Add(48 * time.Hour)
	notes := "bring lab results"

	t.Run("defaults to pending and the caller", func(t *testing.T) {
		req := dto.CreateAppointmentRequest{ScheduledAt: &at, Notes: &notes}

		appt := req.ToModel("user-1")

		assert.NotEmpty(t, appt.ID)
		assert.Equal(t, "user-1", appt.UserID)
		assert.Equal(t, model.StatusPending, appt.Status)
		assert.Equal(t, &at, appt.ScheduledAt)
		assert.Equal(t, &notes, appt.Notes)
		assert.Equal(t, "user-1", appt.CreatedBy)
		assert.False(t, appt.CreatedAt.IsZero())
	})

	t.Run("admin books on behalf of a user", func(t *testing.T) {
		req := dto.CreateAppointmentRequest{UserID: "user-2", ScheduledAt: &at, Status: model.StatusConfirmed}

		appt := req.ToModel("admin-1")

		assert.Equal(t, "user-2", appt.UserID)
		assert.Equal(t, model.StatusConfirmed, appt.Status)
		assert.Equal(t, "admin-1", appt.CreatedBy)
	})
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	at := time.Date(2030, 3, 4, 17, 30, 0, 0, timezone.GetLocation())
	appt := model.Appointment{
		ID:          "appt-1",
		UserID:      "user-1",
		ScheduledAt: &at,
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  at,
			ModifiedAt: at,
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}

	var res dto.AppointmentResponse
	res.FromModel(appt)

	assert.Equal(t, "appt-1", res.ID)
	assert.Equal(t, "2030-03-04", res.Date)
	assert.Equal(t, "17:30", res.Time)
	assert.Nil(t, res.Notes)
	assert.Equal(t, "user-1", res.CreatedBy)
}

func TestAppointmentResponse_FromModel_Unscheduled(t *testing.T) {
	var res dto.AppointmentResponse
	res.FromModel(model.Appointment{ID: "draft-1", Status: model.StatusDraft})

	assert.Empty(t, res.Date)
	assert.Empty(t, res.Time)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	models := []model.Appointment{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	var res dto.GetAppointmentsResponse
	res.FromModels(models, 25, 10)

	assert.Len(t, res.Appointments, 3)
	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "b", res.Appointments[1].ID)
}
