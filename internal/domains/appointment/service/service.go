package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"nutrisur/config"
	"nutrisur/infras/otel"
	"nutrisur/internal/domains/appointment/model"
	"nutrisur/internal/domains/appointment/model/dto"
	"nutrisur/internal/domains/appointment/repository"
	notificationModel "nutrisur/internal/domains/notification/model"
	notification "nutrisur/internal/domains/notification/service"
	"nutrisur/shared"
	"nutrisur/shared/cache"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"

	occupiedSlotsLimit  = 100
	occupiedSlotsLayout = "2006-01-02 15:04"
)

var transitionEvents = map[string]string{
	model.StatusConfirmed: notificationModel.EventAppointmentConfirmed,
	model.StatusCancelled: notificationModel.EventAppointmentCancelled,
	model.StatusCompleted: notificationModel.EventAppointmentCompleted,
}

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetMine(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetAppointmentsResponse, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	// OccupiedSlots renders the upcoming pending and confirmed appointments, one per line.
	OccupiedSlots(ctx context.Context) (string, error)
}

type serviceImpl struct {
	repo         repository.Appointment
	notification notification.Notification
	clock        clock.Clock
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Appointment,
	notification notification.Notification,
	clock clock.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		notification: notification,
		clock:        clock,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.ScheduledAt == nil {
		return res, failure.BadRequestFromString("appointment date is required") // nolint:wrapcheck
	}

	if !req.ScheduledAt.After(s.clock.Now()) {
		return res, failure.BadRequestFromString("appointment must be scheduled in the future") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	appointment := req.ToModel(user)

	if err = s.repo.Insert(ctx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)

		s.publish(c, notificationModel.EventAppointmentCreated, appointment)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetAppointmentsResponse, error) {
	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldScheduledAt
		req.SortDir = gDto.SortDirDesc
	}

	return s.GetAll(ctx, req, shared.FilterByID(userID, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusConfirmed)
}

// Cancel is open to the owner as well as to admins.
func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCompleted)
}

func (s *serviceImpl) transition(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		"appointment.id":     id,
		"appointment.status": status,
	})

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if role == constant.RoleUser && appointment.UserID != user {
		return failure.ResourceRestrictedError
	}

	if !appointment.CanTransitionTo(status) {
		return failure.Conflict(fmt.Sprintf("appointment cannot move from %s to %s", appointment.Status, status)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(dto.UpdateStatusRequest{Status: status}, user)
	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("status", status).Msg("failed to update appointment status")

		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	appointment.Status = status

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)

		s.publish(c, transitionEvents[status], appointment)
	}()

	return nil
}

func (s *serviceImpl) OccupiedSlots(ctx context.Context) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OccupiedSlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []string{model.StatusPending, model.StatusConfirmed},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldScheduledAt,
				Value:    s.clock.Now(),
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		Limit:   occupiedSlotsLimit,
		SortBy:  model.FieldScheduledAt,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied slots")

		return res, fmt.Errorf("failed to get occupied slots: %w", err)
	}

	lines := make([]string, 0, len(models))

	for _, appointment := range models {
		if appointment.ScheduledAt == nil {
			continue
		}

		at := appointment.ScheduledAt.In(s.clock.Location()).Format(occupiedSlotsLayout)
		lines = append(lines, fmt.Sprintf("- %s (%s)", at, appointment.Status))
	}

	return strings.Join(lines, "\n"), nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, appointment model.Appointment) {
	event := notificationModel.Event{
		Type:        eventType,
		EntityID:    appointment.ID,
		UserID:      appointment.UserID,
		Status:      appointment.Status,
		ScheduledAt: appointment.ScheduledAt,
		Notes:       appointment.Notes,
	}

	if err := s.notification.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID).Msg("appointment event not delivered")
	}
}
