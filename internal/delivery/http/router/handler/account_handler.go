// Package handler contains the HTTP handlers for the application.
package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"minishop/internal/delivery/http/response"
	"minishop/internal/domain/service"
	"minishop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// verifiedPageTemplate is the small confirmation page shown after a
// successful email verification.
var verifiedPageTemplate = template.Must(template.New("verified").Parse(`<!DOCTYPE html>
<html>
  <body>
    <div style="display: flex; align-items: center; justify-content: center; flex-direction: column">
      <h3>Account Verified</h3>
      <p>Hi {{.Username}}, your miniShop account has been verified. You can now log in.</p>
    </div>
  </body>
</html>
`))

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc         usecase.AccountUsecase
	imageStore service.ImageStore
	logger     *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, imageStore service.ImageStore, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:         uc,
		imageStore: imageStore,
		logger:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Registration successful. Please check your email to verify your account."
	if !output.EmailSent {
		message = "Registration successful, but the verification email could not be sent. Please request a new one later."
	}

	return response.Success(c, http.StatusCreated, toUserView(output.User, h.imageStore), message)
}

// VerifyEmail consumes the emailed token and shows a small confirmation page.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification token is missing")
	}

	output, err := h.uc.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	var page bytes.Buffer
	if err := verifiedPageTemplate.Execute(&page, map[string]string{"Username": output.User.Username}); err != nil {
		return errors.Wrap(err, "failed to render verification page")
	}

	return c.HTMLBlob(http.StatusOK, page.Bytes())
}

// Login handles the login request and returns a bearer token.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"token_type":   "bearer",
		"user":         toUserView(output.User, h.imageStore),
	}, "Login successful")
}

// GetProfile handles the request to get the current user's profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user, h.imageStore), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
