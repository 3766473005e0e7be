package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/blog-store/internal/models"
	"github.com/sbilibin2017/blog-store/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedBody interface{}
	}{
		{
			name: "success",
			inputBody: models.LoginRequest{
				Username: "john",
				Password: "pass123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return("JWT_TOKEN", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &models.LoginResponse{
				Token: "JWT_TOKEN",
			},
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name:         "missing password",
			inputBody:    models.LoginRequest{Username: "john"},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: &models.ErrorResponse{
				Error: "invalid request body",
			},
		},
		{
			name: "wrong credentials",
			inputBody: models.LoginRequest{
				Username: "wronguser",
				Password: "wrongpass",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "wronguser", "wrongpass").
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: &models.ErrorResponse{
				Error: "Invalid username or password",
			},
		},
		{
			name: "internal error",
			inputBody: models.LoginRequest{
				Username: "john",
				Password: "pass123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return("", errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: &models.ErrorResponse{
				Error: "Internal server error",
			},
		},
	}

	handler := NewLoginHandler(mockSvc)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doRequest(handler, http.MethodPost, "/login", tt.inputBody)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			got := reflect.New(reflect.TypeOf(tt.expectedBody).Elem()).Interface()
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), got))
			assert.Equal(t, tt.expectedBody, got)
		})
	}
}
