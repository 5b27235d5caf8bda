package service

//go:generate go run go.uber.org/mock/mockgen -source=./assisted.go -destination=./mocks/assisted_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"nutrisur/infras/otel"
	appointmentModel "nutrisur/internal/domains/appointment/model"
	appointmentDto "nutrisur/internal/domains/appointment/model/dto"
	appointment "nutrisur/internal/domains/appointment/service"
	assistantModel "nutrisur/internal/domains/assistant/model"
	assistant "nutrisur/internal/domains/assistant/service"
	"nutrisur/internal/domains/dialogue/model"
	"nutrisur/internal/domains/dialogue/model/dto"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"
	"nutrisur/shared/failure"
	"nutrisur/shared/session"

	"github.com/rs/zerolog/log"
)

const (
	replyInvalidSlot = "I couldn't book %s at %s: that is not a valid upcoming date and time. Could you give me another one?"
	replyMissingSlot = "Before booking I still need the %s."
)

// Assisted lets the language model fill the booking slots in a single turn.
type Assisted interface {
	Process(ctx context.Context, userID, message string) (dto.Reply, error)
	Reset(ctx context.Context, userID string) (dto.Reply, error)
}

type assistedImpl struct {
	sessions    session.Store[assistantModel.BookingSlots]
	appointment appointment.Appointment
	assistant   assistant.Assistant
	clock       clock.Clock
	otel        otel.Otel
}

func NewAssisted(
	sessions session.Store[assistantModel.BookingSlots],
	appointment appointment.Appointment,
	assistant assistant.Assistant,
	clock clock.Clock,
	otel otel.Otel,
) Assisted {
	return &assistedImpl{
		sessions:    sessions,
		appointment: appointment,
		assistant:   assistant,
		clock:       clock,
		otel:        otel,
	}
}

func (s *assistedImpl) Process(ctx context.Context, userID, message string) (res dto.Reply, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dialogue.Assisted")
	defer scope.End()
	defer scope.TraceIfError(&err)

	slots, _, err := s.sessions.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load assisted session")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	occupied, err := s.appointment.OccupiedSlots(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("occupied slots unavailable, extracting without them")
	}

	extraction := s.assistant.ExtractBooking(ctx, userID, message, slots, occupied)
	scope.SetAttribute("dialogue.intent", extraction.Intent)

	switch {
	case extraction.Intent == assistantModel.IntentError:
		return dto.Reply{Status: dto.StatusError, BotReply: extraction.TextReply, BookingData: dto.FromSlots(slots)}, nil
	case extraction.Intent == assistantModel.IntentCancel || extraction.ResetFlag:
		if err = s.sessions.Delete(ctx, userID); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to reset assisted session")

			return dto.TechnicalError(), failure.InternalError(err)
		}

		return dto.Reply{Status: dto.StatusReset, BotReply: extraction.TextReply}, nil
	}

	merged := slots.Merge(extraction.ExtractedSlots)

	if extraction.Intent == assistantModel.IntentConfirm {
		return s.commit(ctx, userID, merged, extraction.TextReply)
	}

	if err = s.save(ctx, userID, merged); err != nil {
		return dto.TechnicalError(), err
	}

	return dto.Reply{Status: dto.StatusOK, BotReply: extraction.TextReply, BookingData: dto.FromSlots(merged)}, nil
}

func (s *assistedImpl) commit(ctx context.Context, userID string, slots assistantModel.BookingSlots, botReply string) (dto.Reply, error) {
	if !slots.Complete() {
		if err := s.save(ctx, userID, slots); err != nil {
			return dto.TechnicalError(), err
		}

		missing := "time"
		if slots.Date == nil {
			missing = "date"
		}

		return dto.Reply{Status: dto.StatusOK, BotReply: fmt.Sprintf(replyMissingSlot, missing), BookingData: dto.FromSlots(slots)}, nil
	}

	at, err := time.ParseInLocation(assistantModel.SlotDateLayout+" "+assistantModel.SlotTimeLayout, *slots.Date+" "+*slots.Time, s.clock.Location())
	if err != nil || !at.After(s.clock.Now()) {
		log.Warn().Err(err).Str("user_id", userID).Msg("assistant confirmed an unusable slot")

		if saveErr := s.save(ctx, userID, slots); saveErr != nil {
			return dto.TechnicalError(), saveErr
		}

		return dto.Reply{
			Status:      dto.StatusError,
			BotReply:    fmt.Sprintf(replyInvalidSlot, *slots.Date, *slots.Time),
			BookingData: dto.FromSlots(slots),
		}, nil
	}

	notes := model.NoNotes
	if slots.Notes != nil {
		notes = model.NormalizeNotes(*slots.Notes)
	}

	created, err := s.appointment.Create(ctx, appointmentDto.CreateAppointmentRequest{
		UserID:      userID,
		ScheduledAt: &at,
		Notes:       &notes,
		Status:      appointmentModel.StatusPending,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to commit assisted booking")

		if saveErr := s.save(ctx, userID, slots); saveErr != nil {
			log.Error().Err(saveErr).Str("user_id", userID).Msg("failed to keep assisted session after commit failure")
		}

		return dto.TechnicalError(), failure.InternalError(err)
	}

	if err = s.sessions.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear committed assisted session")
	}

	return dto.Reply{Status: dto.StatusFinalized, BotReply: botReply, BookingData: dto.FromAppointment(created)}, nil
}

func (s *assistedImpl) Reset(ctx context.Context, userID string) (dto.Reply, error) {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to reset assisted session")

		return dto.TechnicalError(), failure.InternalError(err)
	}

	return dto.Reply{Status: dto.StatusReset, BotReply: replyReset}, nil
}

func (s *assistedImpl) save(ctx context.Context, userID string, slots assistantModel.BookingSlots) error {
	if err := s.sessions.Save(ctx, userID, slots); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to save assisted session")

		return failure.InternalError(err)
	}

	return nil
}
