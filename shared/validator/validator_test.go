package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"nutrisur/shared/failure"
	"nutrisur/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"omitempty,e164"`
	Quantity int    `json:"quantity"  validate:"gt=0,lte=50"`
	Status   string `json:"status"    validate:"omitempty,oneof=pending confirmed"`
}

type upload struct {
	Image *multipart.FileHeader `validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "bowl.png",
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		Size:     size,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"email":"ana@example.com","phone":"+56911112222","quantity":2}`, ""},
		{"missing email", `{"quantity":2}`, "Email is required"},
		{"bad phone", `{"email":"ana@example.com","phone":"911112222","quantity":1}`, "Phone must be a phone number in international format, e.g. +56912345678"},
		{"zero quantity", `{"email":"ana@example.com","quantity":0}`, "Quantity must be greater than 0"},
		{"status out of set", `{"email":"ana@example.com","quantity":1,"status":"lost"}`, "Status must be one of pending confirmed"},
		{"malformed", `{"email":`, "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_Upload(t *testing.T) {
	tests := []struct {
		name    string
		image   *multipart.FileHeader
		wantErr string
	}{
		{"no image", nil, ""},
		{"png", fileHeader("image/png", 512<<10), ""},
		{"pdf", fileHeader("application/pdf", 10), "Image must be one of image/png image/jpeg"},
		{"too large", fileHeader("image/jpeg", 2<<20), "Image must not exceed 1 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&upload{Image: tt.image})

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("7f1c9a4e-3c1b-4d8e-9a55-0b7d2f4e8c11", "uuid"))
	assert.EqualError(t, validator.ValidateVar("abc", "uuid"), " must be a valid UUID")
	assert.NoError(t, validator.ValidateVar("data:image/png;base64,iVBORw0KGgo=", "mimetypes=image/png"))
	assert.Error(t, validator.ValidateVar("iVBORw0KGgo=", "mimetypes=image/png"))
}
