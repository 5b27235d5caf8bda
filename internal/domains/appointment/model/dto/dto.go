package dto

import (
	"time"

	"nutrisur/internal/domains/appointment/model"
	"nutrisur/shared"
	gDto "nutrisur/shared/dto"
	gModel "nutrisur/shared/model"
	"nutrisur/shared/timezone"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type CreateAppointmentRequest struct {
	UserID      string     `json:"user_id"      validate:"omitempty,uuid"`
	ScheduledAt *time.Time `json:"scheduled_at" validate:"required"`
	Notes       *string    `json:"notes"        validate:"omitempty,max=1000"`
	Status      string     `json:"status"       validate:"omitempty,oneof=draft pending confirmed"`
}

func (c *CreateAppointmentRequest) ToModel(user string) model.Appointment {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	userID := c.UserID
	if userID == "" {
		userID = user
	}

	now := timezone.Now()

	return model.Appointment{
		ID:          uuid.NewString(),
		UserID:      userID,
		ScheduledAt: c.ScheduledAt,
		Status:      status,
		Notes:       c.Notes,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

type AppointmentResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.ScheduledAt = model.ScheduledAt
	r.Status = model.Status
	r.Notes = model.Notes

	if model.ScheduledAt != nil {
		r.Date = timezone.Format(*model.ScheduledAt, DateLayout)
		r.Time = timezone.Format(*model.ScheduledAt, TimeLayout)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}
