package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/gateway/middleware"
	"github.com/aigerim-zh/kshop/internal/modules/auth/application"
	"github.com/aigerim-zh/kshop/internal/modules/auth/domain"
	authHttp "github.com/aigerim-zh/kshop/internal/modules/auth/interfaces/http"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, req application.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, req application.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *authServiceMock) GoogleLogin(ctx context.Context, clientID string, req application.GoogleLoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *authServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestRegisterHandler_Success(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	reqBody := application.RegisterRequest{
		Email:     "fan@example.com",
		Password:  "lightstick1",
		FirstName: "Aruzhan",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	svc.On("Register", mock.Anything, reqBody).
		Return(&domain.User{ID: uuid.New(), Email: reqBody.Email}, nil)

	h.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	body, _ := json.Marshal(application.RegisterRequest{Email: "dup@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrUserAlreadyExists)

	h.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginHandler_ReturnsTokenAndUser(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	user := &domain.User{ID: uuid.New(), Email: "fan@example.com"}
	svc.On("Login", mock.Anything, mock.Anything).Return("jwt-token", user, nil)

	body, _ := json.Marshal(application.LoginRequest{Email: "fan@example.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp authHttp.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	svc.On("Login", mock.Anything, mock.Anything).Return("", nil, domain.ErrInvalidCredentials)

	body, _ := json.Marshal(application.LoginRequest{Email: "fan@example.com", Password: "bad"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckAuth_WithContextUser(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	id := uuid.New()
	svc.On("GetUser", mock.Anything, id).Return(&domain.User{ID: id, Email: "fan@example.com"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, id)
	w := httptest.NewRecorder()

	h.CheckAuth(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fan@example.com")
}

func TestCheckAuth_DeletedAccountIs401(t *testing.T) {
	svc := new(authServiceMock)
	h := authHttp.NewAuthHandler(svc, "")

	id := uuid.New()
	svc.On("GetUser", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, id)
	w := httptest.NewRecorder()

	h.CheckAuth(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckAuth_NoContextUser(t *testing.T) {
	h := authHttp.NewAuthHandler(new(authServiceMock), "")

	req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
	w := httptest.NewRecorder()

	h.CheckAuth(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
