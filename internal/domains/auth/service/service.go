package service

import (
	"context"
	"fmt"
	"strings"

	"nutrisur/config"
	"nutrisur/infras/jwt"
	"nutrisur/infras/otel"
	"nutrisur/internal/domains/auth/model/dto"
	notificationModel "nutrisur/internal/domains/notification/model"
	notification "nutrisur/internal/domains/notification/service"
	userModel "nutrisur/internal/domains/user/model"
	userRepo "nutrisur/internal/domains/user/repository"
	"nutrisur/shared"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"
	"nutrisur/shared/password"
	"nutrisur/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo     userRepo.User
	notification notification.Notification
	cfg          *config.Config
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(userRepo userRepo.User, notification notification.Notification, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:     userRepo,
		notification: notification,
		cfg:          cfg,
		otel:         otel,
		jwtService:   jwt,
	}
}

var errInvalidCredentials = failure.BadRequestFromString("invalid email or password")

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exists, err := s.userRepo.Exist(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email")

		return fmt.Errorf("failed to check email: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return failure.BadRequest(err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashed)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("email already registered")
		}

		log.Error().Err(err).Msg("failed to register user")

		return fmt.Errorf("failed to register user: %w", err)
	}

	scope.SetAttribute("user.id", user.ID)

	event := notificationModel.Event{Type: notificationModel.EventUserRegistered, EntityID: user.ID, UserID: user.ID}
	if err := s.notification.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("registration event not published")
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.Get(ctx, byEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up login email")

		return res, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.ID == "" || password.Verify(req.Password, user.Password) != nil {
		log.Warn().Str("email", req.Email).Msg("rejected login")

		return res, errInvalidCredentials
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated")
	}

	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue tokens")

		return res, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.touchLastLogin(ctx, user.ID)

	res.FromTokenPair(pair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	pair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token rejected")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(pair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	byID := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, byID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return failure.BadRequest(err)
	}

	if err = s.userRepo.Update(ctx, shared.TransformFields(dto.PasswordChange{Password: hashed}, userID), byID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to store new password")

		return fmt.Errorf("failed to store new password: %w", err)
	}

	return nil
}

// touchLastLogin is best effort, a failed write must not block a valid login.
func (s *serviceImpl) touchLastLogin(ctx context.Context, userID string) {
	fields := shared.TransformFields(dto.LastLogin{LastLogin: timezone.Now()}, userID)

	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to record last login")
	}
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByID(strings.ToLower(email), userModel.FieldEmail, userModel.TableName)
}
