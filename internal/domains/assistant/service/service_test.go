package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nutrisur/config"
	llmMocks "nutrisur/infras/llm/mocks"
	"nutrisur/infras/otel/mocks"
	"nutrisur/internal/domains/assistant/model"
	"nutrisur/internal/domains/assistant/service"
	"nutrisur/shared/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T, cfg *config.Config) (service.Assistant, *llmMocks.MockGenerator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	generator := llmMocks.NewMockGenerator(ctrl)

	return service.New(generator, clock.Fixed(now), cfg, mocks.NewOtel()), generator
}

func TestAssistantService_ExtractBooking(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		llmErr     error
		wantIntent string
		wantReply  string
		wantDate   *string
		wantReset  bool
	}{
		{
			name:       "valid reply",
			reply:      `{"textReply":"What time?","extractedSlots":{"date":"2025-06-02","time":null,"notes":null},"intent":"continue","resetFlag":false}`,
			wantIntent: model.IntentContinue,
			wantReply:  "What time?",
			wantDate:   ptr("2025-06-02"),
		},
		{
			name:       "fenced reply",
			reply:      "```json\n{\"textReply\":\"Booked!\",\"extractedSlots\":{\"date\":null,\"time\":\"17:30\",\"notes\":\"\"},\"intent\":\"confirm\",\"resetFlag\":false}\n```",
			wantIntent: model.IntentConfirm,
			wantReply:  "Booked!",
		},
		{
			name:       "cancel with reset flag",
			reply:      `{"textReply":"Starting over.","extractedSlots":{"date":null,"time":null,"notes":null},"intent":"cancel","resetFlag":true}`,
			wantIntent: model.IntentCancel,
			wantReply:  "Starting over.",
			wantReset:  true,
		},
		{
			name:       "non-JSON text",
			reply:      "Sure! I booked you for tomorrow.",
			wantIntent: model.IntentError,
			wantReply:  service.FallbackReply,
		},
		{
			name:       "unknown intent",
			reply:      `{"textReply":"ok","extractedSlots":{"date":null,"time":null,"notes":null},"intent":"book","resetFlag":false}`,
			wantIntent: model.IntentError,
			wantReply:  service.FallbackReply,
		},
		{
			name:       "missing textReply",
			reply:      `{"extractedSlots":{"date":null,"time":null,"notes":null},"intent":"continue","resetFlag":false}`,
			wantIntent: model.IntentError,
			wantReply:  service.FallbackReply,
		},
		{
			name:       "unexpected field",
			reply:      `{"textReply":"ok","extractedSlots":{"date":null,"time":null,"notes":null},"intent":"continue","resetFlag":false,"mood":"happy"}`,
			wantIntent: model.IntentError,
			wantReply:  service.FallbackReply,
		},
		{
			name:       "provider failure",
			llmErr:     context.DeadlineExceeded,
			wantIntent: model.IntentError,
			wantReply:  service.FallbackReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, generator := newService(t, &config.Config{})

			generator.EXPECT().
				Generate(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.reply, tt.llmErr)

			res := svc.ExtractBooking(context.Background(), "user-1", "tomorrow please", model.BookingSlots{}, "")

			assert.Equal(t, tt.wantIntent, res.Intent)
			assert.Equal(t, tt.wantReply, res.TextReply)
			assert.Equal(t, tt.wantDate, res.ExtractedSlots.Date)
			assert.Equal(t, tt.wantReset, res.ResetFlag)
			assert.Nil(t, res.ExtractedSlots.Notes)
		})
	}
}

func TestAssistantService_ExtractBooking_Prompt(t *testing.T) {
	cfg := &config.Config{}
	cfg.Assistant.BookingInstructions = "We are closed on Sundays."

	svc, generator := newService(t, cfg)

	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, system, prompt string) (string, error) {
			assert.Contains(t, system, "We are closed on Sundays.")
			assert.Contains(t, prompt, "Sunday 2025-06-01 09:00")
			assert.Contains(t, prompt, `"date":"2025-06-02"`)
			assert.Contains(t, prompt, "- 2025-06-02 17:30 (pending)")
			assert.Contains(t, prompt, "User message: at five")

			return "not json", nil
		})

	res := svc.ExtractBooking(
		context.Background(),
		"user-1",
		"at five",
		model.BookingSlots{Date: ptr("2025-06-02")},
		"- 2025-06-02 17:30 (pending)",
	)

	assert.Equal(t, model.IntentError, res.Intent)
}

func TestAssistantService_RateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.Assistant.RequestsPerMinute = 1
	cfg.Assistant.Burst = 1

	svc, generator := newService(t, cfg)

	generator.EXPECT().
		Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"textReply":"Hi","extractedSlots":{"date":null,"time":null,"notes":null},"intent":"continue","resetFlag":false}`, nil).
		Times(1)

	first := svc.ExtractBooking(context.Background(), "user-1", "hello", model.BookingSlots{}, "")
	second := svc.ExtractBooking(context.Background(), "user-1", "hello again", model.BookingSlots{}, "")

	assert.Equal(t, model.IntentContinue, first.Intent)
	assert.Equal(t, model.IntentError, second.Intent)
	assert.Equal(t, service.FallbackReply, second.TextReply)
}

func TestAssistantService_ExtractOrder(t *testing.T) {
	catalog := []model.CatalogItem{{Name: "Granola", Price: 4.5}, {Name: "Oat milk", Price: 2.25}}

	t.Run("actions are decoded and quantities defaulted", func(t *testing.T) {
		svc, generator := newService(t, &config.Config{})

		generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, prompt string) (string, error) {
				assert.Contains(t, prompt, "- Granola (4.50)")
				assert.Contains(t, prompt, "user: hi")

				return `{"textReply":"Added.","actions":[{"type":"add","productName":"Granola","quantity":2},{"type":"remove","productName":"Oat milk","quantity":0}],"finalize":false}`, nil
			})

		res := svc.ExtractOrder(
			context.Background(),
			"user-1",
			"two granola, no milk",
			catalog,
			model.OrderState{},
			[]model.HistoryEntry{{Role: model.RoleUser, Content: "hi"}},
		)

		require.False(t, res.Failed)
		require.Len(t, res.Actions, 2)
		assert.Equal(t, 2, res.Actions[0].Quantity)
		assert.Equal(t, 1, res.Actions[1].Quantity)
	})

	t.Run("unknown action falls back", func(t *testing.T) {
		svc, generator := newService(t, &config.Config{})

		generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(`{"textReply":"ok","actions":[{"type":"swap","productName":"Granola","quantity":1}],"finalize":false}`, nil)

		res := svc.ExtractOrder(context.Background(), "user-1", "swap", catalog, model.OrderState{}, nil)

		assert.True(t, res.Failed)
		assert.Equal(t, service.FallbackOrderReply, res.TextReply)
	})

	t.Run("provider failure falls back", func(t *testing.T) {
		svc, generator := newService(t, &config.Config{})

		generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("quota exceeded"))

		res := svc.ExtractOrder(context.Background(), "user-1", "granola", catalog, model.OrderState{}, nil)

		assert.True(t, res.Failed)
		assert.Empty(t, res.Actions)
	})

	t.Run("history is trimmed to the configured limit", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Assistant.HistoryLimit = 1

		svc, generator := newService(t, cfg)

		generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, prompt string) (string, error) {
				assert.NotContains(t, prompt, "user: old")
				assert.Contains(t, prompt, "assistant: recent")

				return `{"textReply":"ok","actions":[],"finalize":true}`, nil
			})

		res := svc.ExtractOrder(context.Background(), "user-1", "done", catalog, model.OrderState{}, []model.HistoryEntry{
			{Role: model.RoleUser, Content: "old"},
			{Role: model.RoleAssistant, Content: "recent"},
		})

		assert.True(t, res.Finalize)
	})
}

func ptr(s string) *string {
	return &s
}
