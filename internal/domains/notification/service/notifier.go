package service

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=../mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nutrisur/config"
	"nutrisur/infras/kafka"
	"nutrisur/infras/otel"
	"nutrisur/internal/domains/notification/model"
	user "nutrisur/internal/domains/user/service"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Sink delivers rendered notices to staff.
type Sink interface {
	Deliver(ctx context.Context, notice model.Notice) error
}

type logSink struct{}

// NewLogSink writes notices to the structured log.
func NewLogSink() Sink {
	return logSink{}
}

func (logSink) Deliver(_ context.Context, notice model.Notice) error {
	log.Info().Str("subject", notice.Subject).Str("body", notice.Body).Msg("staff notice")

	return nil
}

// Notifier turns published events into staff notices.
type Notifier interface {
	Run(ctx context.Context) error
	Handle(ctx context.Context, msg kafkaGo.Message) error
}

type notifierImpl struct {
	kafka kafka.Client
	users user.User
	sink  Sink
	cfg   *config.Config
	clock clock.Clock
	otel  otel.Otel
}

func NewNotifier(
	kafka kafka.Client,
	users user.User,
	sink Sink,
	cfg *config.Config,
	clock clock.Clock,
	otel otel.Otel,
) Notifier {
	return &notifierImpl{
		kafka: kafka,
		users: users,
		sink:  sink,
		cfg:   cfg,
		clock: clock,
		otel:  otel,
	}
}

func (n *notifierImpl) Run(ctx context.Context) error {
	log.Info().Str("topic", n.cfg.Kafka.Topic).Str("group", n.cfg.Kafka.ConsumerGroup).Msg("notifier listening")

	return n.kafka.Consume(ctx, n.cfg.Kafka.ConsumerGroup, n.cfg.Kafka.Topic, n.Handle)
}

func (n *notifierImpl) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		return err
	}

	scope.SetAttributes(map[string]any{
		"event.type":      event.Type,
		"event.entity_id": event.EntityID,
	})

	notice, ok := model.Render(event, n.contact(ctx, event.UserID), n.clock.Location())
	if !ok {
		log.Debug().Str("type", event.Type).Msg("event needs no notice")

		return nil
	}

	if err = n.sink.Deliver(ctx, notice); err != nil {
		return fmt.Errorf("failed to deliver %s notice: %w", event.Type, err)
	}

	return nil
}

// contact falls back to an anonymous customer when the user cannot be loaded.
func (n *notifierImpl) contact(ctx context.Context, userID string) model.Contact {
	if userID == "" {
		return model.Contact{}
	}

	res, err := n.users.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("notice sent without customer details")

		return model.Contact{}
	}

	contact := model.Contact{Email: res.Email}

	if res.FullName != nil {
		contact.Name = *res.FullName
	}

	if res.Phone != nil {
		contact.Phone = *res.Phone
	}

	return contact
}
