package service_test

import (
	"context"
	"errors"
	"testing"

	"nutrisur/config"
	kafkaMocks "nutrisur/infras/kafka/mocks"
	"nutrisur/infras/otel/mocks"
	"nutrisur/internal/domains/notification/model"
	"nutrisur/internal/domains/notification/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNotificationService_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)

	event := model.Event{
		Type:     model.EventAppointmentCreated,
		EntityID: "appointment-1",
		UserID:   "user-1",
		Status:   "pending",
	}

	tests := []struct {
		name      string
		enabled   bool
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "disabled publisher drops the event",
			enabled:   false,
			setupMock: func() {},
		},
		{
			name:    "event is sent to the configured topic",
			enabled: true,
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "notifications", gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "broker failure is returned",
			enabled: true,
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "notifications", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Kafka.Enable = tt.enabled
			cfg.Kafka.Topic = "notifications"

			svc := service.New(mockKafka, cfg, mocks.NewOtel())

			tt.setupMock()

			err := svc.Publish(context.Background(), event)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
