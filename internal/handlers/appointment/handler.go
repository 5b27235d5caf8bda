package appointment

import (
	"context"
	"net/http"

	"nutrisur/infras/otel"
	"nutrisur/internal/domains/appointment/model"
	"nutrisur/internal/domains/appointment/model/dto"
	"nutrisur/internal/domains/appointment/service"
	dialogueDto "nutrisur/internal/domains/dialogue/model/dto"
	dialogue "nutrisur/internal/domains/dialogue/service"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"
	"nutrisur/shared/validator"
	"nutrisur/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Appointment
	booking  dialogue.Booking
	assisted dialogue.Assisted
	otel     otel.Otel
}

func New(service service.Appointment, booking dialogue.Booking, assisted dialogue.Assisted, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		booking:  booking,
		assisted: assisted,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/chat", handler.Chat)
		routerGroup.Get("/chat", handler.CurrentChat)
		routerGroup.Delete("/chat", handler.ResetChat)
		routerGroup.Post("/assistant", handler.Assistant)
		routerGroup.Delete("/assistant", handler.ResetAssistant)

		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/mine", handler.GetMyAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Post("/{id}/resume", handler.ResumeAppointment)
		routerGroup.Patch("/{id}/confirm", handler.ConfirmAppointment)
		routerGroup.Patch("/{id}/cancel", handler.CancelAppointment)
		routerGroup.Patch("/{id}/complete", handler.CompleteAppointment)
	})
}

// Chat advances the scripted booking conversation by one message.
// @Summary Send a booking chat message
// @Description Drives the date, time and notes dialogue. The reply echoes the booking gathered so far.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dialogueDto.ChatRequest true "Chat message"
// @Success 200 {object} dialogueDto.Reply
// @Failure 400 {object} dialogueDto.Reply
// @Failure 500 {object} dialogueDto.Reply
// @Router /v1/appointments/chat [post]
// @Security BearerAuth
func (handler *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Chat")
	defer scope.End()

	req := dialogueDto.ChatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("unreadable chat message")

		response.WithBody(w, http.StatusBadRequest, dialogueDto.TechnicalError())

		return
	}

	reply, err := handler.booking.Process(ctx, userOf(r), req.Message)
	writeReply(w, scope, reply, err)
}

// CurrentChat returns the booking gathered so far without advancing it.
// @Summary Get the booking chat state
// @Tags Appointment
// @Produce json
// @Success 200 {object} dialogueDto.Reply
// @Failure 500 {object} dialogueDto.Reply
// @Router /v1/appointments/chat [get]
// @Security BearerAuth
func (handler *Handler) CurrentChat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CurrentChat")
	defer scope.End()

	reply, err := handler.booking.Current(ctx, userOf(r))
	writeReply(w, scope, reply, err)
}

// ResetChat discards the booking conversation.
// @Summary Reset the booking chat
// @Tags Appointment
// @Produce json
// @Success 200 {object} dialogueDto.Reply
// @Failure 500 {object} dialogueDto.Reply
// @Router /v1/appointments/chat [delete]
// @Security BearerAuth
func (handler *Handler) ResetChat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetChat")
	defer scope.End()

	reply, err := handler.booking.Reset(ctx, userOf(r))
	writeReply(w, scope, reply, err)
}

// Assistant lets the language model extract the booking from free text.
// @Summary Send a message to the booking assistant
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dialogueDto.ChatRequest true "Chat message"
// @Success 200 {object} dialogueDto.Reply
// @Failure 400 {object} dialogueDto.Reply
// @Failure 500 {object} dialogueDto.Reply
// @Router /v1/appointments/assistant [post]
// @Security BearerAuth
func (handler *Handler) Assistant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Assistant")
	defer scope.End()

	req := dialogueDto.ChatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("unreadable assistant message")

		response.WithBody(w, http.StatusBadRequest, dialogueDto.TechnicalError())

		return
	}

	reply, err := handler.assisted.Process(ctx, userOf(r), req.Message)
	writeReply(w, scope, reply, err)
}

// ResetAssistant discards the slots the assistant has gathered.
// @Summary Reset the booking assistant
// @Tags Appointment
// @Produce json
// @Success 200 {object} dialogueDto.Reply
// @Failure 500 {object} dialogueDto.Reply
// @Router /v1/appointments/assistant [delete]
// @Security BearerAuth
func (handler *Handler) ResetAssistant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetAssistant")
	defer scope.End()

	reply, err := handler.assisted.Reset(ctx, userOf(r))
	writeReply(w, scope, reply, err)
}

// ResumeAppointment cancels an appointment and reopens its day in a booking chat.
// @Summary Edit an appointment through the chat
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} dialogueDto.Reply
// @Failure 403 {object} dialogueDto.Reply
// @Failure 404 {object} dialogueDto.Reply
// @Failure 409 {object} dialogueDto.Reply
// @Router /v1/appointments/{id}/resume [post]
// @Security BearerAuth
func (handler *Handler) ResumeAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResumeAppointment")
	defer scope.End()

	reply, err := handler.booking.Resume(ctx, userOf(r), chi.URLParam(r, constant.RequestParamID))
	writeReply(w, scope, reply, err)
}

// CreateAppointment books a slot directly, without the dialogue.
// @Summary Create an appointment
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	// only staff may book on behalf of someone else
	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleUser {
		req.UserID = userOf(r)
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAppointments lists appointments for staff.
// @Summary Get all appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param user_id query string false "Filter by user"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldStatus, model.FieldUserID} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyAppointments lists the caller's appointments, newest first.
// @Summary Get my appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/appointments/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, userOf(r), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAppointmentByID retrieves one appointment. Users only see their own.
// @Summary Get an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment")

		response.WithError(w, err)

		return
	}

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleUser && res.UserID != userOf(r) {
		response.WithError(w, failure.ResourceRestrictedError)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ConfirmAppointment
// @Summary Confirm an appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/confirm [patch]
// @Security BearerAuth
func (handler *Handler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "ConfirmAppointment", handler.service.Confirm, "Appointment confirmed")
}

// CancelAppointment
// @Summary Cancel an appointment
// @Description Owners may cancel their own appointments.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CancelAppointment", handler.service.Cancel, "Appointment cancelled")
}

// CompleteAppointment
// @Summary Mark an appointment as completed
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	handler.transition(w, r, "CompleteAppointment", handler.service.Complete, "Appointment completed")
}

func (handler *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(ctx context.Context, id string) error,
	message string,
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := apply(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("appointment_id", id).Msg("failed to change appointment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(message + " by user " + userOf(r))

	response.WithMessage(w, http.StatusOK, message)
}

func writeReply(w http.ResponseWriter, scope otel.Scope, reply dialogueDto.Reply, err error) {
	if err != nil {
		scope.TraceError(err)
		response.WithBody(w, failure.GetCode(err), reply)

		return
	}

	scope.SetAttribute("dialogue.status", reply.Status)
	response.WithBody(w, http.StatusOK, reply)
}

func userOf(r *http.Request) string {
	user, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	return user
}
