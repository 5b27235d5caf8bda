package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"nutrisur/config"
	"nutrisur/infras/llm"
	"nutrisur/infras/otel"
	"nutrisur/internal/domains/assistant/model"
	"nutrisur/shared/clock"
	"nutrisur/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	FallbackReply      = "Sorry, I'm having trouble understanding right now. Could you say that another way?"
	FallbackOrderReply = "Sorry, I couldn't update your order right now. Please try again in a moment."

	secondsPerMinute = 60

	limiterSweepInterval = time.Minute
)

var (
	errRateLimited = errors.New("assistant rate limit exceeded")
	errMalformed   = errors.New("malformed assistant reply")
)

type Assistant interface {
	// ExtractBooking never fails: any problem yields FallbackReply with IntentError.
	ExtractBooking(ctx context.Context, userID, message string, slots model.BookingSlots, occupied string) model.Extraction
	ExtractOrder(
		ctx context.Context,
		userID, message string,
		catalog []model.CatalogItem,
		order model.OrderState,
		history []model.HistoryEntry,
	) model.OrderExtraction
}

type serviceImpl struct {
	llm   llm.Generator
	clock clock.Clock
	cfg   *config.Config
	otel  otel.Otel

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	sweptAt  time.Time
}

func New(llm llm.Generator, clock clock.Clock, cfg *config.Config, otel otel.Otel) Assistant {
	return &serviceImpl{
		llm:      llm,
		clock:    clock,
		cfg:      cfg,
		otel:     otel,
		limiters: map[string]*rate.Limiter{},
	}
}

func (s *serviceImpl) ExtractBooking(ctx context.Context, userID, message string, slots model.BookingSlots, occupied string) (res model.Extraction) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtractBooking")
	defer scope.End()

	raw, err := s.generate(ctx, userID,
		withInstructions(bookingSystemPrompt, s.cfg.Assistant.BookingInstructions),
		bookingPrompt(s.clock.Now(), message, slots, occupied),
	)
	if err == nil {
		res, err = decodeBooking(raw)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("user_id", userID).Msg("booking extraction failed, using fallback reply")

		return model.Extraction{TextReply: FallbackReply, Intent: model.IntentError}
	}

	scope.SetAttribute("assistant.intent", res.Intent)

	return res
}

func (s *serviceImpl) ExtractOrder(
	ctx context.Context,
	userID, message string,
	catalog []model.CatalogItem,
	order model.OrderState,
	history []model.HistoryEntry,
) (res model.OrderExtraction) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExtractOrder")
	defer scope.End()

	if limit := s.cfg.Assistant.HistoryLimit; limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	raw, err := s.generate(ctx, userID,
		withInstructions(orderSystemPrompt, s.cfg.Assistant.OrderInstructions),
		orderPrompt(s.clock.Now(), message, catalog, order, history),
	)
	if err == nil {
		res, err = decodeOrder(raw)
	}

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("user_id", userID).Msg("order extraction failed, using fallback reply")

		return model.OrderExtraction{TextReply: FallbackOrderReply, Failed: true}
	}

	return res
}

func (s *serviceImpl) generate(ctx context.Context, userID, system, prompt string) (string, error) {
	if !s.allow(userID) {
		return constant.Empty, errRateLimited
	}

	raw, err := s.llm.Generate(ctx, system, prompt)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to call assistant: %w", err)
	}

	return raw, nil
}

func (s *serviceImpl) allow(userID string) bool {
	perMinute := s.cfg.Assistant.RequestsPerMinute
	if perMinute <= 0 {
		return true
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.sweptAt) >= limiterSweepInterval {
		s.sweep(now)
		s.sweptAt = now
	}

	limiter, ok := s.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/secondsPerMinute), max(s.cfg.Assistant.Burst, 1))
		s.limiters[userID] = limiter
	}

	return limiter.AllowN(now, 1)
}

// sweep drops limiters that have refilled completely, a fresh one behaves the same.
func (s *serviceImpl) sweep(now time.Time) {
	for userID, limiter := range s.limiters {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(s.limiters, userID)
		}
	}
}

type bookingPayload struct {
	TextReply      *string             `json:"textReply"`
	ExtractedSlots *model.BookingSlots `json:"extractedSlots"`
	Intent         string              `json:"intent"`
	ResetFlag      *bool               `json:"resetFlag"`
}

func decodeBooking(raw string) (model.Extraction, error) {
	var payload bookingPayload

	if err := decodeStrict(raw, &payload); err != nil {
		return model.Extraction{}, err
	}

	if payload.TextReply == nil || strings.TrimSpace(*payload.TextReply) == "" {
		return model.Extraction{}, fmt.Errorf("%w: missing textReply", errMalformed)
	}

	if payload.ExtractedSlots == nil || payload.ResetFlag == nil {
		return model.Extraction{}, fmt.Errorf("%w: missing extractedSlots or resetFlag", errMalformed)
	}

	switch payload.Intent {
	case model.IntentContinue, model.IntentCancel, model.IntentConfirm:
	default:
		return model.Extraction{}, fmt.Errorf("%w: unknown intent %q", errMalformed, payload.Intent)
	}

	return model.Extraction{
		TextReply: *payload.TextReply,
		ExtractedSlots: model.BookingSlots{
			Date:  blankToNil(payload.ExtractedSlots.Date),
			Time:  blankToNil(payload.ExtractedSlots.Time),
			Notes: blankToNil(payload.ExtractedSlots.Notes),
		},
		Intent:    payload.Intent,
		ResetFlag: *payload.ResetFlag,
	}, nil
}

type orderPayload struct {
	TextReply *string             `json:"textReply"`
	Actions   []model.OrderAction `json:"actions"`
	Finalize  bool                `json:"finalize"`
}

func decodeOrder(raw string) (model.OrderExtraction, error) {
	var payload orderPayload

	if err := decodeStrict(raw, &payload); err != nil {
		return model.OrderExtraction{}, err
	}

	if payload.TextReply == nil || strings.TrimSpace(*payload.TextReply) == "" {
		return model.OrderExtraction{}, fmt.Errorf("%w: missing textReply", errMalformed)
	}

	for i, action := range payload.Actions {
		if action.Type != model.ActionAdd && action.Type != model.ActionRemove {
			return model.OrderExtraction{}, fmt.Errorf("%w: unknown action %q", errMalformed, action.Type)
		}

		if strings.TrimSpace(action.ProductName) == "" {
			return model.OrderExtraction{}, fmt.Errorf("%w: action without product", errMalformed)
		}

		if action.Quantity <= 0 {
			payload.Actions[i].Quantity = 1
		}
	}

	return model.OrderExtraction{
		TextReply: *payload.TextReply,
		Actions:   payload.Actions,
		Finalize:  payload.Finalize,
	}, nil
}

// decodeStrict reads exactly one JSON object, tolerating a surrounding markdown fence.
func decodeStrict(raw string, dest any) error {
	decoder := json.NewDecoder(bytes.NewReader([]byte(stripFence(raw))))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", errMalformed, err)
	}

	if decoder.More() {
		return fmt.Errorf("%w: trailing data", errMalformed)
	}

	return nil
}

func stripFence(raw string) string {
	text := strings.TrimSpace(raw)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

func blankToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}

	trimmed := strings.TrimSpace(*value)

	return &trimmed
}
