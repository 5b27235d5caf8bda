package dto

import (
	"cmp"
	"strings"
	"time"

	"nutrisur/internal/domains/user/model"
	"nutrisur/shared"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	gModel "nutrisur/shared/model"
	"nutrisur/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8"`
	Level        string  `json:"level"                   validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `json:"full_name,omitempty"`
	Phone        *string `json:"phone,omitempty"         validate:"omitempty,e164"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   *bool   `json:"is_verified,omitempty"`
}

// ToModel builds a new active account. Level defaults to a regular user.
func (r *CreateUserRequest) ToModel(actor string, hashedPassword string) model.User {
	user := model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(r.Email),
		Password:     hashedPassword,
		Level:        cmp.Or(r.Level, constant.RoleUser),
		FullName:     r.FullName,
		Phone:        r.Phone,
		ProfileImage: r.ProfileImage,
		Active:       true,
		Metadata:     gModel.NewMetadata(actor, timezone.Now()),
	}

	if r.IsVerified != nil {
		user.IsVerified = *r.IsVerified
	}

	return user
}

type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Level        string     `json:"level"`
	FullName     *string    `json:"full_name,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	ProfileImage *string    `json:"profile_image,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Active       bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.ProfileImage = model.ProfileImage
	r.IsVerified = model.IsVerified
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Level        *string `db:"level"         json:"level,omitempty"         validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"`
	Phone        *string `db:"phone"         json:"phone,omitempty"         validate:"omitempty,e164"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
	IsVerified   *bool   `db:"is_verified"   json:"is_verified,omitempty"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName     *string `json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	Phone        *string `json:"phone,omitempty"         validate:"omitempty,e164"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url"`
}

func (r *UpdateProfileRequest) ToUpdateRequest() UpdateUserRequest {
	return UpdateUserRequest{
		FullName:     r.FullName,
		Phone:        r.Phone,
		ProfileImage: r.ProfileImage,
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
