package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nutrisur/config"
	"nutrisur/infras/kafka"
	"nutrisur/infras/otel"
	"nutrisur/internal/domains/notification/model"
	"nutrisur/shared/constant"
	"nutrisur/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	Publish(ctx context.Context, event model.Event) error
}

type serviceImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Publish(ctx context.Context, event model.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		"event.type":      event.Type,
		"event.entity_id": event.EntityID,
	})

	if !s.cfg.Kafka.Enable {
		log.Debug().Str("type", event.Type).Str("entity_id", event.EntityID).Msg("notifications disabled, event dropped")

		return nil
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{
		Key:   event.EntityID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to publish notification")

		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
