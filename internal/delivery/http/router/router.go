// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"minishop/config"
	"minishop/internal/delivery/http/middleware"
	"minishop/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config           *config.Config
	AccountHandler   *handler.AccountHandler
	BusinessHandler  *handler.BusinessHandler
	ProductHandler   *handler.ProductHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoggerMiddleware *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg              *config.Config
	accountHandler   *handler.AccountHandler
	businessHandler  *handler.BusinessHandler
	productHandler   *handler.ProductHandler
	authMiddleware   *middleware.AuthMiddleware
	loggerMiddleware *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:              params.Config,
		accountHandler:   params.AccountHandler,
		businessHandler:  params.BusinessHandler,
		productHandler:   params.ProductHandler,
		authMiddleware:   params.AuthMiddleware,
		loggerMiddleware: params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.loggerMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Stored images are served as static files.
	e.Static(r.cfg.Upload.URLPrefix, r.cfg.Upload.Dir)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.GET("/verify-email", r.accountHandler.VerifyEmail)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.accountHandler.GetProfile)
		userGroup.PUT("/business", r.businessHandler.UpdateBusiness)
		userGroup.POST("/business/logo", r.businessHandler.UploadLogo)
	}

	// Product browsing is public, mutation requires authentication
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		productGroup.POST("", r.productHandler.CreateProduct, r.authMiddleware.Authenticate)
		productGroup.PUT("/:id", r.productHandler.UpdateProduct, r.authMiddleware.Authenticate)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, r.authMiddleware.Authenticate)
		productGroup.POST("/:id/image", r.productHandler.UploadProductImage, r.authMiddleware.Authenticate)
	}
}
