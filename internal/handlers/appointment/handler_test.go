package appointment_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutrisur/infras/otel/mocks"
	serviceMocks "nutrisur/internal/domains/appointment/service/mocks"
	dialogueDto "nutrisur/internal/domains/dialogue/model/dto"
	dialogueMocks "nutrisur/internal/domains/dialogue/service/mocks"
	"nutrisur/internal/handlers/appointment"
	"nutrisur/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func post(t *testing.T, booking *dialogueMocks.MockBooking, body string) (*httptest.ResponseRecorder, dialogueDto.Reply) {
	t.Helper()

	ctrl := gomock.NewController(t)
	handler := appointment.New(serviceMocks.NewMockAppointment(ctrl), booking, dialogueMocks.NewMockAssisted(ctrl), mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/chat", strings.NewReader(body)))

	var reply dialogueDto.Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))

	return rec, reply
}

func TestHandler_Chat(t *testing.T) {
	t.Run("malformed body never reaches the dialogue", func(t *testing.T) {
		booking := dialogueMocks.NewMockBooking(gomock.NewController(t))

		rec, reply := post(t, booking, `{"message":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dialogueDto.TechnicalError(), reply)
	})

	t.Run("reply is passed through", func(t *testing.T) {
		booking := dialogueMocks.NewMockBooking(gomock.NewController(t))
		booking.EXPECT().
			Process(gomock.Any(), gomock.Any(), "tomorrow").
			Return(dialogueDto.Reply{Status: dialogueDto.StatusOK, BotReply: "What time suits you?"}, nil)

		rec, reply := post(t, booking, `{"message":"tomorrow"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "What time suits you?", reply.BotReply)
	})

	t.Run("commit failure keeps the envelope", func(t *testing.T) {
		booking := dialogueMocks.NewMockBooking(gomock.NewController(t))
		booking.EXPECT().
			Process(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dialogueDto.TechnicalError(), failure.InternalError(errors.New("db down")))

		rec, reply := post(t, booking, `{"message":"no"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, dialogueDto.StatusError, reply.Status)
	})
}
