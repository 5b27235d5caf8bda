package di

import (
	"nutrisur/config"
	"nutrisur/infras/kafka"
	assistantModel "nutrisur/internal/domains/assistant/model"
	dialogueModel "nutrisur/internal/domains/dialogue/model"
	notificationService "nutrisur/internal/domains/notification/service"
	orderService "nutrisur/internal/domains/order/service"
	"nutrisur/shared/cache"
	"nutrisur/shared/clock"
	"nutrisur/shared/dateparse"
	"nutrisur/shared/session"
)

// Worker is the notification consumer process. Kafka is closed by the caller on shutdown.
type Worker struct {
	Notifier notificationService.Notifier
	Kafka    kafka.Client
}

// Generic stores cannot be handed to wire directly, so each session type gets a typed provider.

func provideBookingSessions(redisCache cache.RedisCache, cfg *config.Config) session.Store[dialogueModel.Session] {
	return session.NewStore[dialogueModel.Session](redisCache, dialogueModel.SessionPrefixBooking, cfg.Dialogue.SessionTTLSeconds)
}

func provideAssistedSessions(redisCache cache.RedisCache, cfg *config.Config) session.Store[assistantModel.BookingSlots] {
	return session.NewStore[assistantModel.BookingSlots](redisCache, dialogueModel.SessionPrefixAssisted, cfg.Dialogue.SessionTTLSeconds)
}

func provideOrderChatHistory(redisCache cache.RedisCache, cfg *config.Config) session.Store[[]assistantModel.HistoryEntry] {
	return session.NewStore[[]assistantModel.HistoryEntry](redisCache, orderService.SessionPrefixOrderChat, cfg.Dialogue.SessionTTLSeconds)
}

func provideDateParser(clk clock.Clock, cfg *config.Config) *dateparse.Parser {
	return dateparse.New(clk, cfg.Dialogue.Languages...)
}
