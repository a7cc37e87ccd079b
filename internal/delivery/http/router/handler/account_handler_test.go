package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverymiddleware "minishop/internal/delivery/http/middleware"
	"minishop/internal/delivery/http/validator"
	"minishop/internal/domain/entity"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io"
	"log/slog"
)

// stubAccountUsecase implements usecase.AccountUsecase with overridable behavior.
type stubAccountUsecase struct {
	register    func(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error)
	verifyEmail func(ctx context.Context, token string) (*usecase.VerifyEmailOutput, error)
	login       func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
	getProfile  func(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

func (s *stubAccountUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return s.register(ctx, input)
}

func (s *stubAccountUsecase) VerifyEmail(ctx context.Context, token string) (*usecase.VerifyEmailOutput, error) {
	return s.verifyEmail(ctx, token)
}

func (s *stubAccountUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.login(ctx, input)
}

func (s *stubAccountUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.getProfile(ctx, userID)
}

// stubImageStore satisfies service.ImageStore for view rendering.
type stubImageStore struct{}

func (stubImageStore) Save(_ context.Context, _ string, _ []byte) (string, error) {
	return "", nil
}

func (stubImageStore) URL(filename string) string {
	return "/uploads/" + filename
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = deliverymiddleware.NewErrorMiddleware(logger).HandleHTTPError

	return e
}

func TestAccountHandler_Register_Success(t *testing.T) {
	uc := &stubAccountUsecase{
		register: func(_ context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			user := &entity.User{
				ID:       uuid.New(),
				Username: input.Username,
				Email:    input.Email,
				Business: &entity.Business{
					ID:           uuid.New(),
					BusinessName: input.Username,
					Logo:         entity.DefaultLogoFile,
				},
			}

			return &usecase.RegisterOutput{User: user, EmailSent: true}, nil
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.POST("/auth/register", h.Register)

	body := `{"username":"alice","email":"alice@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.Contains(t, rec.Body.String(), `"logo_url":"/uploads/default.jpg"`)
	// Password material never appears in the response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAccountHandler_Register_ValidationFailure(t *testing.T) {
	uc := &stubAccountUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			t.Fatal("usecase must not be reached on invalid input")

			return nil, nil
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.POST("/auth/register", h.Register)

	// Malformed email and short password
	body := `{"username":"alice","email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestAccountHandler_Register_DuplicateConflict(t *testing.T) {
	uc := &stubAccountUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.POST("/auth/register", h.Register)

	body := `{"username":"alice","email":"alice@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "USER_ALREADY_EXISTS")
}

func TestAccountHandler_VerifyEmail_RendersPage(t *testing.T) {
	uc := &stubAccountUsecase{
		verifyEmail: func(_ context.Context, token string) (*usecase.VerifyEmailOutput, error) {
			require.Equal(t, "valid_token", token)

			return &usecase.VerifyEmailOutput{User: &entity.User{Username: "alice", IsVerified: true}}, nil
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.GET("/auth/verify-email", h.VerifyEmail)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-email?token=valid_token", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Hi alice")
}

func TestAccountHandler_VerifyEmail_ExpiredToken(t *testing.T) {
	uc := &stubAccountUsecase{
		verifyEmail: func(_ context.Context, _ string) (*usecase.VerifyEmailOutput, error) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("token past its expiry")
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.GET("/auth/verify-email", h.VerifyEmail)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-email?token=stale", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAccountHandler_VerifyEmail_MissingToken(t *testing.T) {
	uc := &stubAccountUsecase{}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.GET("/auth/verify-email", h.VerifyEmail)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-email", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	uc := &stubAccountUsecase{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginOutput, error) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.POST("/auth/login", h.Login)

	body := `{"username":"alice","password":"WrongPassword"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAccountHandler_Login_ReturnsBearerToken(t *testing.T) {
	uc := &stubAccountUsecase{
		login: func(_ context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
			return &usecase.LoginOutput{
				AccessToken: "signed.jwt.token",
				User:        &entity.User{ID: uuid.New(), Username: input.Username},
			}, nil
		},
	}

	e := newTestEcho()
	h := NewAccountHandler(uc, stubImageStore{}, slog.Default())
	e.POST("/auth/login", h.Login)

	body := `{"username":"alice","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"signed.jwt.token"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}
