package service

//go:generate go run go.uber.org/mock/mockgen -source=./booking.go -destination=./mocks/booking_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"nutrisur/infras/otel"
	appointmentModel "nutrisur/internal/domains/appointment/model"
	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
	appointment "nutrisur/internal/domains/appointment/service"
	"nutrisur/internal/domains/dialogue/model"
	"nutrisur/internal/domains/dialogue/model/dto"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"
	"nutrisur/shared/dateparse"
	"nutrisur/shared/failure"
	"nutrisur/shared/session"

	"github.com/rs/zerolog/log"
)

// A date without a clock time resolves to midnight, so a day that has already started is in the past.
const (
	dateDefaultHour   = 0
	dateDefaultMinute = 0
)

const (
	replyAskDate    = "Which day would you like to come in? You can say \"tomorrow\", \"next friday\" or a date like 25/12/2028."
	replyRetryDate  = "I couldn't find an upcoming date in that. Please send a day like \"tomorrow\" or 25/12/2028."
	replyAskTime    = "Great, %s it is. What time suits you? For example 17:30 or 5pm."
	replyRetryTime  = "I couldn't read a time. Please send it like 17:30 or 5pm."
	replyPastTime   = "That time has already passed. Please choose a later time."
	replyAskNotes   = "Noted: %s at %s. Anything we should know before the appointment? Reply \"no\" if not."
	replyFinalized  = "All set! Your appointment on %s at %s is booked and waiting for confirmation."
	replyReset      = "Booking cancelled. Tell me a day whenever you want to start again."
	replyResumeTime = "Let's move your appointment on %s. What new time suits you?"
	replyResumeDate = "Let's reschedule your appointment. Which day would you like instead?"
)

const replyDayLayout = "Monday 02/01/2006"

// Booking drives the step-by-step booking conversation: date, then time, then notes.
type Booking interface {
	Process(ctx context.Context, userID, message string) (dto.Reply, error)
	Current(ctx context.Context, userID string) (dto.Reply, error)
	Reset(ctx context.Context, userID string) (dto.Reply, error)
	// Resume cancels an existing appointment and reopens its day in a new conversation.
	Resume(ctx context.Context, userID, appointmentID string) (dto.Reply, error)
}

type bookingImpl struct {
	sessions    session.Store[model.Session]
	appointment appointment.Appointment
	parser      *dateparse.Parser
	clock       clock.Clock
	otel        otel.Otel
}

func NewBooking(
	sessions session.Store[model.Session],
	appointment appointment.Appointment,
	parser *dateparse.Parser,
	clock clock.Clock,
	otel otel.Otel,
) Booking {
	return &bookingImpl{
		sessions:    sessions,
		appointment: appointment,
		parser:      parser,
		clock:       clock,
		otel:        otel,
	}
}

func (s *bookingImpl) Process(ctx context.Context, userID, message string) (res dto.Reply, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dialogue.Process")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if model.IsCancel(message) {
		return s.Reset(ctx, userID)
	}

	current, _, err := s.sessions.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load booking session")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	state := current.State()
	scope.SetAttribute("dialogue.state", state.String())

	switch state {
	case model.StateAwaitingDate:
		return s.handleDate(ctx, userID, current, message)
	case model.StateAwaitingTime:
		return s.handleTime(ctx, userID, current, message)
	default:
		return s.commit(ctx, userID, current, message)
	}
}

func (s *bookingImpl) handleDate(ctx context.Context, userID string, current model.Session, message string) (dto.Reply, error) {
	day, err := s.parser.Parse(message, dateDefaultHour, dateDefaultMinute)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("no date in message")

		return s.reply(dto.StatusOK, replyRetryDate, current), nil
	}

	current.PinDay(day)

	if err = s.save(ctx, userID, current); err != nil {
		return dto.TechnicalError(), err
	}

	return s.reply(dto.StatusOK, fmt.Sprintf(replyAskTime, day.Format(replyDayLayout)), current), nil
}

func (s *bookingImpl) handleTime(ctx context.Context, userID string, current model.Session, message string) (dto.Reply, error) {
	hour, minute, err := s.parser.ParseClock(message)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("no time in message")

		return s.reply(dto.StatusOK, replyRetryTime, current), nil
	}

	candidate := current
	at := candidate.PinTime(s.clock.Location(), hour, minute)

	if !at.After(s.clock.Now()) {
		return s.reply(dto.StatusOK, replyPastTime, current), nil
	}

	if err = s.save(ctx, userID, candidate); err != nil {
		return dto.TechnicalError(), err
	}

	return s.reply(
		dto.StatusOK,
		fmt.Sprintf(replyAskNotes, at.Format(replyDayLayout), at.Format(appointmentDto.TimeLayout)),
		candidate,
	), nil
}

func (s *bookingImpl) commit(ctx context.Context, userID string, current model.Session, message string) (dto.Reply, error) {
	notes := model.NormalizeNotes(message)

	created, err := s.appointment.Create(ctx, appointmentDto.CreateAppointmentRequest{
		UserID:      userID,
		ScheduledAt: current.Date,
		Notes:       &notes,
		Status:      appointmentModel.StatusPending,
	})
	if err != nil {
		// the slot went stale while the user typed their notes
		if failure.GetCode(err) == http.StatusBadRequest {
			current.PinDay(current.Date.In(s.clock.Location()))

			if saveErr := s.save(ctx, userID, current); saveErr != nil {
				return dto.TechnicalError(), saveErr
			}

			return s.reply(dto.StatusOK, replyPastTime, current), nil
		}

		log.Error().Err(err).Str("user_id", userID).Msg("failed to commit booking")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	if err = s.sessions.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear committed booking session")
	}

	return dto.Reply{
		Status:      dto.StatusFinalized,
		BotReply:    fmt.Sprintf(replyFinalized, created.Date, created.Time),
		BookingData: dto.FromAppointment(created),
	}, nil
}

func (s *bookingImpl) Reset(ctx context.Context, userID string) (dto.Reply, error) {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to reset booking session")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	return dto.Reply{Status: dto.StatusReset, BotReply: replyReset}, nil
}

func (s *bookingImpl) Resume(ctx context.Context, userID, appointmentID string) (res dto.Reply, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dialogue.Resume")
	defer scope.End()
	defer scope.TraceIfError(&err)

	record, err := s.appointment.Get(ctx, appointmentID)
	if err != nil {
		return s.refuse(err), fmt.Errorf("failed to get appointment: %w", err)
	}

	if record.UserID != userID {
		return s.refuse(failure.ResourceRestrictedError), failure.ResourceRestrictedError
	}

	resumed := model.Resume(record, s.clock.Now().In(s.clock.Location()))

	if err = s.save(ctx, userID, resumed); err != nil {
		return dto.TechnicalError(), err
	}

	if err = s.appointment.Cancel(ctx, appointmentID); err != nil {
		if dropErr := s.sessions.Delete(ctx, userID); dropErr != nil {
			log.Error().Err(dropErr).Str("user_id", userID).Msg("failed to drop resumed booking session")
		}

		return s.refuse(err), fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if resumed.State() == model.StateAwaitingDate {
		return s.reply(dto.StatusOK, replyResumeDate, resumed), nil
	}

	return s.reply(dto.StatusOK, fmt.Sprintf(replyResumeTime, resumed.Date.Format(replyDayLayout)), resumed), nil
}

// Current echoes the session in progress with the prompt for its next step.
func (s *bookingImpl) Current(ctx context.Context, userID string) (dto.Reply, error) {
	current, _, err := s.sessions.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load booking session")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	switch current.State() {
	case model.StateAwaitingDate:
		return s.reply(dto.StatusOK, replyAskDate, current), nil
	case model.StateAwaitingTime:
		return s.reply(dto.StatusOK, fmt.Sprintf(replyAskTime, current.Date.In(s.clock.Location()).Format(replyDayLayout)), current), nil
	default:
		at := current.Date.In(s.clock.Location())

		return s.reply(dto.StatusOK, fmt.Sprintf(replyAskNotes, at.Format(replyDayLayout), at.Format(appointmentDto.TimeLayout)), current), nil
	}
}

// refuse keeps the chat envelope for client errors and hides the cause of server errors.
func (s *bookingImpl) refuse(err error) dto.Reply {
	var fail *failure.Failure
	if !errors.As(err, &fail) || fail.Code >= http.StatusInternalServerError {
		return dto.TechnicalError()
	}

	return dto.Reply{Status: dto.StatusError, BotReply: fail.Message}
}

func (s *bookingImpl) save(ctx context.Context, userID string, current model.Session) error {
	if err := s.sessions.Save(ctx, userID, current); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to save booking session")

		return failure.InternalError(err)
	}

	return nil
}

func (s *bookingImpl) reply(status, botReply string, current model.Session) dto.Reply {
	return dto.Reply{
		Status:      status,
		BotReply:    botReply,
		BookingData: dto.FromSession(current, s.clock.Location()),
	}
}
