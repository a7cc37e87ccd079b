package handler

import (
	"io"
	"log/slog"
	"net/http"

	"minishop/internal/delivery/http/response"
	"minishop/internal/domain/service"
	"minishop/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BusinessHandler holds dependencies for storefront-related handlers.
type BusinessHandler struct {
	uc         usecase.BusinessUsecase
	imageStore service.ImageStore
	logger     *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler, injected by Fx.
func NewBusinessHandler(uc usecase.BusinessUsecase, imageStore service.ImageStore, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		uc:         uc,
		imageStore: imageStore,
		logger:     logger,
	}
}

type updateBusinessRequest struct {
	BusinessName string `json:"business_name" validate:"omitempty,min=3,max=100"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	Description  string `json:"description"`
}

// UpdateBusiness handles updates to the caller's own storefront.
func (h *BusinessHandler) UpdateBusiness(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	var req updateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	business, err := h.uc.UpdateBusiness(c.Request().Context(), usecase.UpdateBusinessInput{
		OwnerID:      userID,
		BusinessName: req.BusinessName,
		City:         req.City,
		Region:       req.Region,
		Country:      req.Country,
		Description:  req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessView(business, h.imageStore), "Business updated successfully")
}

// UploadLogo handles a multipart logo upload for the caller's storefront.
func (h *BusinessHandler) UploadLogo(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	filename, content, err := readUploadedFile(c)
	if err != nil {
		return err
	}

	business, err := h.uc.UploadLogo(c.Request().Context(), usecase.UploadLogoInput{
		OwnerID:  userID,
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toBusinessView(business, h.imageStore), "Logo uploaded successfully")
}

// readUploadedFile pulls the multipart "file" part into memory.
func readUploadedFile(c echo.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, response.BadRequest(c, "INVALID_INPUT", "Multipart field 'file' is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to read uploaded file")
	}

	return fileHeader.Filename, content, nil
}
