package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"nutrisur/infras/otel/mocks"
	appointmentModel "nutrisur/internal/domains/appointment/model"
	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
	appointmentMocks "nutrisur/internal/domains/appointment/service/mocks"
	"nutrisur/internal/domains/dialogue/model"
	"nutrisur/internal/domains/dialogue/model/dto"
	"nutrisur/internal/domains/dialogue/service"
	"nutrisur/shared/clock"
	"nutrisur/shared/dateparse"
	"nutrisur/shared/failure"
	sessionMocks "nutrisur/shared/session/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type bookingFixture struct {
	sessions    *sessionMocks.MockStore[model.Session]
	appointment *appointmentMocks.MockAppointment
	svc         service.Booking
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	clk := clock.Fixed(now)

	f := bookingFixture{
		sessions:    sessionMocks.NewMockStore[model.Session](ctrl),
		appointment: appointmentMocks.NewMockAppointment(ctrl),
	}

	f.svc = service.NewBooking(f.sessions, f.appointment, dateparse.New(clk), clk, mocks.NewOtel())

	return f
}

func day(year int, month time.Month, d int) *time.Time {
	at := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)

	return &at
}

func TestBookingService_AwaitingDate(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantDay  *time.Time
		wantText string
	}{
		{
			name:     "relative day moves to awaiting time",
			message:  "tomorrow",
			wantDay:  day(2025, 6, 2),
			wantText: "What time",
		},
		{
			name:     "numeric date is read day first",
			message:  "25/12/2028",
			wantDay:  day(2028, 12, 25),
			wantText: "What time",
		},
		{
			name:     "today has already started",
			message:  "2025-06-01",
			wantText: "couldn't find an upcoming date",
		},
		{
			name:     "past date is rejected",
			message:  "01/01/2020",
			wantText: "couldn't find an upcoming date",
		},
		{
			name:     "no date at all",
			message:  "hello there",
			wantText: "couldn't find an upcoming date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			f.sessions.EXPECT().
				Load(gomock.Any(), "user-1").
				Return(model.Session{}, false, nil)

			if tt.wantDay != nil {
				f.sessions.EXPECT().
					Save(gomock.Any(), "user-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, saved model.Session) error {
						require.NotNil(t, saved.Date)
						assert.True(t, tt.wantDay.Equal(*saved.Date), "got %s", saved.Date)
						assert.False(t, saved.TimePinned)
						assert.Equal(t, model.StateAwaitingTime, saved.State())

						return nil
					})
			}

			res, err := f.svc.Process(context.Background(), "user-1", tt.message)

			require.NoError(t, err)
			assert.Equal(t, dto.StatusOK, res.Status)
			assert.Contains(t, res.BotReply, tt.wantText)
			require.NotNil(t, res.BookingData)
			assert.Equal(t, dto.PlaceholderPending, res.BookingData.Time)
		})
	}
}

func TestBookingService_AwaitingTime(t *testing.T) {
	tests := []struct {
		name      string
		stored    *time.Time
		message   string
		wantSaved bool
		wantText  string
	}{
		{
			name:      "time is merged into the stored day",
			stored:    day(2025, 6, 2),
			message:   "17:30",
			wantSaved: true,
			wantText:  "Anything we should know",
		},
		{
			name:     "time already passed today",
			stored:   day(2025, 6, 1),
			message:  "08:00",
			wantText: "already passed",
		},
		{
			name:     "exactly now is not in the future",
			stored:   day(2025, 6, 1),
			message:  "09:00",
			wantText: "already passed",
		},
		{
			name:     "unreadable time",
			stored:   day(2025, 6, 2),
			message:  "whenever",
			wantText: "couldn't read a time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			f.sessions.EXPECT().
				Load(gomock.Any(), "user-1").
				Return(model.Session{Date: tt.stored}, true, nil)

			if tt.wantSaved {
				f.sessions.EXPECT().
					Save(gomock.Any(), "user-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, saved model.Session) error {
						want := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)

						assert.True(t, want.Equal(*saved.Date), "got %s", saved.Date)
						assert.True(t, saved.TimePinned)

						return nil
					})
			}

			res, err := f.svc.Process(context.Background(), "user-1", tt.message)

			require.NoError(t, err)
			assert.Equal(t, dto.StatusOK, res.Status)
			assert.Contains(t, res.BotReply, tt.wantText)

			if tt.wantSaved {
				assert.Equal(t, "17:30", res.BookingData.Time)
			} else {
				assert.Equal(t, dto.PlaceholderPending, res.BookingData.Time)
			}
		})
	}
}

func TestBookingService_Commit(t *testing.T) {
	at := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
	pinned := model.Session{Date: &at, TimePinned: true}

	t.Run("notes commit a pending appointment", func(t *testing.T) {
		f := newBookingFixture(t)

		f.sessions.EXPECT().Load(gomock.Any(), "user-1").Return(pinned, true, nil)
		f.appointment.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req appointmentDto.CreateAppointmentRequest) (appointmentDto.AppointmentResponse, error) {
				assert.Equal(t, "user-1", req.UserID)
				assert.True(t, at.Equal(*req.ScheduledAt))
				assert.Equal(t, model.NoNotes, *req.Notes)
				assert.Equal(t, appointmentModel.StatusPending, req.Status)

				return appointmentDto.AppointmentResponse{
					ID:          "a1",
					UserID:      "user-1",
					ScheduledAt: req.ScheduledAt,
					Date:        "2025-06-02",
					Time:        "17:30",
					Status:      req.Status,
					Notes:       req.Notes,
				}, nil
			})
		f.sessions.EXPECT().Delete(gomock.Any(), "user-1").Return(nil)

		res, err := f.svc.Process(context.Background(), "user-1", "All good")

		require.NoError(t, err)
		assert.Equal(t, dto.StatusFinalized, res.Status)
		assert.Equal(t, &dto.BookingData{ID: "a1", Status: "pending", Date: "2025-06-02", Time: "17:30", Notes: model.NoNotes}, res.BookingData)
	})

	t.Run("persistence failure keeps the session", func(t *testing.T) {
		f := newBookingFixture(t)

		f.sessions.EXPECT().Load(gomock.Any(), "user-1").Return(pinned, true, nil)
		f.appointment.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(appointmentDto.AppointmentResponse{}, errors.New("database down"))

		res, err := f.svc.Process(context.Background(), "user-1", "vegetarian")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, dto.StatusError, res.Status)
		assert.Equal(t, dto.TechnicalErrorReply, res.BotReply)
	})

	t.Run("stale slot goes back to asking for a time", func(t *testing.T) {
		f := newBookingFixture(t)

		f.sessions.EXPECT().Load(gomock.Any(), "user-1").Return(pinned, true, nil)
		f.appointment.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(appointmentDto.AppointmentResponse{}, failure.BadRequestFromString("appointment must be scheduled in the future"))
		f.sessions.EXPECT().
			Save(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, saved model.Session) error {
				assert.Equal(t, model.StateAwaitingTime, saved.State())
				assert.True(t, day(2025, 6, 2).Equal(*saved.Date))

				return nil
			})

		res, err := f.svc.Process(context.Background(), "user-1", "no")

		require.NoError(t, err)
		assert.Equal(t, dto.StatusOK, res.Status)
		assert.Contains(t, res.BotReply, "already passed")
	})
}

func TestBookingService_Cancel(t *testing.T) {
	for _, message := range []string{"cancel", "CANCEL", "Let's start over", "quiero cancelar"} {
		t.Run(message, func(t *testing.T) {
			f := newBookingFixture(t)

			// no Load: cancellation wins before any state is read
			f.sessions.EXPECT().Delete(gomock.Any(), "user-1").Return(nil)

			res, err := f.svc.Process(context.Background(), "user-1", message)

			require.NoError(t, err)
			assert.Equal(t, dto.StatusReset, res.Status)
			assert.Nil(t, res.BookingData)
		})
	}

	t.Run("repeated cancel on an empty session", func(t *testing.T) {
		f := newBookingFixture(t)

		f.sessions.EXPECT().Delete(gomock.Any(), "user-1").Return(nil).Times(2)

		first, err := f.svc.Process(context.Background(), "user-1", "cancel")
		require.NoError(t, err)

		second, err := f.svc.Process(context.Background(), "user-1", "cancel")
		require.NoError(t, err)

		assert.Equal(t, dto.StatusReset, first.Status)
		assert.Equal(t, dto.StatusReset, second.Status)
	})

	t.Run("cancel during notes does not commit", func(t *testing.T) {
		f := newBookingFixture(t)

		f.sessions.EXPECT().Delete(gomock.Any(), "user-1").Return(nil)

		res, err := f.svc.Process(context.Background(), "user-1", "actually, reset please")

		require.NoError(t, err)
		assert.Equal(t, dto.StatusReset, res.Status)
	})
}

func TestBookingService_SessionStoreFailure(t *testing.T) {
	f := newBookingFixture(t)

	f.sessions.EXPECT().
		Load(gomock.Any(), "user-1").
		Return(model.Session{}, false, errors.New("redis unavailable"))

	res, err := f.svc.Process(context.Background(), "user-1", "tomorrow")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, dto.StatusError, res.Status)
}

func TestBookingService_Current(t *testing.T) {
	f := newBookingFixture(t)

	f.sessions.EXPECT().
		Load(gomock.Any(), "user-1").
		Return(model.Session{Date: day(2025, 6, 2)}, true, nil)

	res, err := f.svc.Current(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Contains(t, res.BotReply, "What time")
	assert.Equal(t, "2025-06-02", res.BookingData.Date)
}

func TestBookingService_Resume(t *testing.T) {
	at := time.Date(2025, 6, 5, 10, 30, 0, 0, time.UTC)
	notes := "fasting"
	record := appointmentDto.AppointmentResponse{ID: "a1", UserID: "user-1", ScheduledAt: &at, Notes: &notes, Status: "confirmed"}

	t.Run("owner reopens the day", func(t *testing.T) {
		f := newBookingFixture(t)

		f.appointment.EXPECT().Get(gomock.Any(), "a1").Return(record, nil)
		f.appointment.EXPECT().Cancel(gomock.Any(), "a1").Return(nil)
		f.sessions.EXPECT().
			Save(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, saved model.Session) error {
				assert.True(t, day(2025, 6, 5).Equal(*saved.Date))
				assert.Equal(t, model.StateAwaitingTime, saved.State())
				assert.Equal(t, "fasting", *saved.Notes)

				return nil
			})

		res, err := f.svc.Resume(context.Background(), "user-1", "a1")

		require.NoError(t, err)
		assert.Equal(t, dto.StatusOK, res.Status)
		assert.Equal(t, "2025-06-05", res.BookingData.Date)
		assert.Equal(t, dto.PlaceholderPending, res.BookingData.Time)
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		f := newBookingFixture(t)

		f.appointment.EXPECT().Get(gomock.Any(), "a1").Return(record, nil)

		res, err := f.svc.Resume(context.Background(), "user-2", "a1")

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Equal(t, dto.StatusError, res.Status)
		assert.Equal(t, failure.ResourceRestrictedError.Message, res.BotReply)
	})

	t.Run("session store failure keeps the appointment", func(t *testing.T) {
		f := newBookingFixture(t)

		f.appointment.EXPECT().Get(gomock.Any(), "a1").Return(record, nil)
		f.sessions.EXPECT().Save(gomock.Any(), "user-1", gomock.Any()).Return(errors.New("redis down"))

		res, err := f.svc.Resume(context.Background(), "user-1", "a1")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, dto.TechnicalError(), res)
	})

	t.Run("cancel failure drops the resumed session", func(t *testing.T) {
		f := newBookingFixture(t)

		f.appointment.EXPECT().Get(gomock.Any(), "a1").Return(record, nil)
		f.sessions.EXPECT().Save(gomock.Any(), "user-1", gomock.Any()).Return(nil)
		f.appointment.EXPECT().Cancel(gomock.Any(), "a1").Return(failure.Conflict("appointment is already completed"))
		f.sessions.EXPECT().Delete(gomock.Any(), "user-1").Return(nil)

		res, err := f.svc.Resume(context.Background(), "user-1", "a1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, dto.StatusError, res.Status)
		assert.Equal(t, "appointment is already completed", res.BotReply)
	})

	t.Run("past day asks for a new date", func(t *testing.T) {
		f := newBookingFixture(t)

		past := time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC)
		stale := appointmentDto.AppointmentResponse{ID: "a2", UserID: "user-1", ScheduledAt: &past, Notes: &notes, Status: "pending"}

		f.appointment.EXPECT().Get(gomock.Any(), "a2").Return(stale, nil)
		f.appointment.EXPECT().Cancel(gomock.Any(), "a2").Return(nil)
		f.sessions.EXPECT().
			Save(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, saved model.Session) error {
				assert.Equal(t, model.StateAwaitingDate, saved.State())
				assert.Equal(t, "fasting", *saved.Notes)

				return nil
			})

		res, err := f.svc.Resume(context.Background(), "user-1", "a2")

		require.NoError(t, err)
		assert.Contains(t, res.BotReply, "Which day")
		assert.Equal(t, dto.PlaceholderPending, res.BookingData.Date)
	})
}
