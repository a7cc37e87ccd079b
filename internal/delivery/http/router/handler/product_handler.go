package handler

import (
	"log/slog"
	"net/http"
	"time"

	"minishop/internal/delivery/http/response"
	"minishop/internal/domain/service"
	"minishop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product-related handlers.
type ProductHandler struct {
	uc         usecase.ProductUsecase
	imageStore service.ImageStore
	logger     *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, imageStore service.ImageStore, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:         uc,
		imageStore: imageStore,
		logger:     logger,
	}
}

type productRequest struct {
	Name           string    `json:"name" validate:"required,min=2,max=100"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	OriginalPrice  float64   `json:"original_price" validate:"required"`
	NewPrice       float64   `json:"new_price" validate:"gte=0"`
	OfferExpiresAt time.Time `json:"offer_expires_at"`
}

// CreateProduct lists a new product under the caller's storefront.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		OwnerID:        userID,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		OriginalPrice:  req.OriginalPrice,
		NewPrice:       req.NewPrice,
		OfferExpiresAt: req.OfferExpiresAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductView(product, h.imageStore), "Product created successfully")
}

// ListProducts returns all products.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductViews(products, h.imageStore), "Products retrieved successfully")
}

// GetProduct returns a single product with its storefront metadata.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product, h.imageStore), "Product retrieved successfully")
}

// UpdateProduct modifies a product the caller owns.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), usecase.UpdateProductInput{
		ActorID:        userID,
		ProductID:      productID,
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		OriginalPrice:  req.OriginalPrice,
		NewPrice:       req.NewPrice,
		OfferExpiresAt: req.OfferExpiresAt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product, h.imageStore), "Product updated successfully")
}

// DeleteProduct removes a product the caller owns.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": productID.String()}, "Product deleted successfully")
}

// UploadProductImage handles a multipart image upload for a product.
func (h *ProductHandler) UploadProductImage(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	productID, err := parseProductID(c)
	if err != nil {
		return err
	}

	filename, content, err := readUploadedFile(c)
	if err != nil {
		return err
	}

	product, err := h.uc.UploadProductImage(c.Request().Context(), usecase.UploadProductImageInput{
		ActorID:   userID,
		ProductID: productID,
		Filename:  filename,
		Content:   content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductView(product, h.imageStore), "Product image uploaded successfully")
}

func parseProductID(c echo.Context) (uuid.UUID, error) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, response.BadRequest(c, "INVALID_INPUT", "Product id must be a valid UUID")
	}

	return productID, nil
}
