package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/blog-store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter(store UserStore) http.Handler {
	r := chi.NewRouter()
	r.Post("/users", NewCreateUserHandler(store))
	r.Get("/users/{id}", NewGetUserHandler(store))
	r.Get("/users/by-username/{username}", NewGetUserByUsernameHandler(store))
	r.Patch("/users/{id}", NewUpdateUserHandler(store))
	r.Delete("/users/{id}", NewDeleteUserHandler(store))
	return r
}

func doRequest(h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var bodyBytes []byte
	switch v := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(v)
	default:
		bodyBytes, _ = json.Marshal(v)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockUserStore(ctrl)
	router := newUserRouter(mockStore)

	valid := models.UserCreateRequest{Username: "alice", Email: "alice@example.com", Password: "secret"}

	tests := []struct {
		name         string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
	}{
		{
			name:      "success",
			inputBody: valid,
			mockSetup: func() {
				mockStore.EXPECT().
					Create(gomock.Any(), valid).
					Return(&models.UserCreated{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid email",
			inputBody:    models.UserCreateRequest{Username: "alice", Email: "nope", Password: "secret"},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing password",
			inputBody:    models.UserCreateRequest{Username: "alice", Email: "alice@example.com"},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "duplicate username",
			inputBody: valid,
			mockSetup: func() {
				mockStore.EXPECT().
					Create(gomock.Any(), valid).
					Return(nil, &pgconn.PgError{Code: "23505"})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:      "internal error",
			inputBody: valid,
			mockSetup: func() {
				mockStore.EXPECT().
					Create(gomock.Any(), valid).
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doRequest(router, http.MethodPost, "/users", tt.inputBody)
			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusCreated {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, float64(1), resp["id"])
				assert.Equal(t, "alice", resp["username"])
				assert.NotContains(t, resp, "password")
				assert.NotContains(t, resp, "hashed_password")
			}
		})
	}
}

func TestGetUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockUserStore(ctrl)
	router := newUserRouter(mockStore)

	user := &models.User{ID: 7, Username: "bob", Email: "bob@example.com"}

	tests := []struct {
		name         string
		target       string
		mockSetup    func()
		expectedCode int
		expectedBody *models.User
	}{
		{
			name:   "by id",
			target: "/users/7",
			mockSetup: func() {
				mockStore.EXPECT().GetByID(gomock.Any(), int64(7)).Return(user, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: user,
		},
		{
			name:   "by id not found",
			target: "/users/8",
			mockSetup: func() {
				mockStore.EXPECT().GetByID(gomock.Any(), int64(8)).Return(nil, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "bad id",
			target:       "/users/abc",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "by username",
			target: "/users/by-username/bob",
			mockSetup: func() {
				mockStore.EXPECT().GetByUsername(gomock.Any(), "bob").Return(user, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: user,
		},
		{
			name:   "by username not found",
			target: "/users/by-username/ghost",
			mockSetup: func() {
				mockStore.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "store error",
			target: "/users/9",
			mockSetup: func() {
				mockStore.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doRequest(router, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedBody != nil {
				var resp models.User
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestUpdateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockUserStore(ctrl)
	router := newUserRouter(mockStore)

	email := "new@example.com"
	req := models.UserUpdateRequest{Email: &email}

	tests := []struct {
		name         string
		target       string
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
	}{
		{
			name:      "success",
			target:    "/users/1",
			inputBody: req,
			mockSetup: func() {
				mockStore.EXPECT().
					Update(gomock.Any(), int64(1), req).
					Return(&models.User{ID: 1, Username: "alice", Email: email}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "not found",
			target:    "/users/2",
			inputBody: req,
			mockSetup: func() {
				mockStore.EXPECT().Update(gomock.Any(), int64(2), req).Return(nil, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "invalid email",
			target:       "/users/1",
			inputBody:    `{"email":"nope"}`,
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "username taken",
			target:    "/users/1",
			inputBody: req,
			mockSetup: func() {
				mockStore.EXPECT().
					Update(gomock.Any(), int64(1), req).
					Return(nil, &pgconn.PgError{Code: "23505"})
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doRequest(router, http.MethodPatch, tt.target, tt.inputBody)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestDeleteUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockUserStore(ctrl)
	router := newUserRouter(mockStore)

	tests := []struct {
		name         string
		mockSetup    func()
		expectedCode int
	}{
		{
			name: "deleted",
			mockSetup: func() {
				mockStore.EXPECT().Delete(gomock.Any(), int64(3)).Return(true, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "not found",
			mockSetup: func() {
				mockStore.EXPECT().Delete(gomock.Any(), int64(3)).Return(false, nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "still owns content",
			mockSetup: func() {
				mockStore.EXPECT().Delete(gomock.Any(), int64(3)).Return(false, &pgconn.PgError{Code: "23503"})
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := doRequest(router, http.MethodDelete, "/users/3", nil)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
