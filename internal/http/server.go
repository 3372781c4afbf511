package http

import (
	"context"
	stdhttp "net/http"

	"commerce-service/internal/ability"
	"commerce-service/internal/audit"
	"commerce-service/internal/auth"
	"commerce-service/internal/config"
	"commerce-service/internal/http/handler"
	"commerce-service/internal/http/middleware"
	"commerce-service/internal/repository"
	"commerce-service/pkg/metrics"
	"commerce-service/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config            *config.Config
	UserRepo          repository.UserRepository
	ProductRepo       repository.ProductRepository
	CategoryRepo      repository.CategoryRepository
	TagRepo           repository.TagRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	InvoiceRepo       repository.InvoiceRepository
	AddressRepo       repository.AddressRepository
	Sessions          *auth.SessionValidator
	AuthMiddleware    *auth.Middleware
	AbilityMiddleware *auth.AbilityMiddleware
	AuditLogger       *audit.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.Middleware())

	// Token decoding runs before rate limiting so authenticated requests are
	// limited per user rather than per IP.
	e.Use(deps.AuthMiddleware.DecodeToken())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for credential endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	pageSize := deps.Config.App.PageSize
	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.Sessions, deps.AuditLogger)
	userHandler := handler.NewUserHandler(deps.UserRepo)
	productHandler := handler.NewProductHandler(deps.ProductRepo, pageSize)
	taxonomyHandler := handler.NewTaxonomyHandler(deps.CategoryRepo, deps.TagRepo)
	cartHandler := handler.NewCartHandler(deps.CartRepo, deps.ProductRepo)
	orderHandler := handler.NewOrderHandler(deps.OrderRepo, deps.InvoiceRepo, deps.CartRepo, deps.AddressRepo, deps.AuditLogger, pageSize)
	addressHandler := handler.NewAddressHandler(deps.AddressRepo, pageSize)

	e.POST("/auth/register", authHandler.Register, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	metrics.RegisterRoutes(e)
	if profiling.IsProfilingEnabled() {
		profiling.RegisterPprofRoutes(e)
		profiling.RegisterMemoryRoutes(e)
	}

	// Catalog reads are public. The user role carries no product read rule,
	// so guarding these with an ability check would lock out signed-in
	// customers; browsing is simply not permission-gated.
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.GET("/categories", taxonomyHandler.ListCategories)
	e.GET("/tags", taxonomyHandler.ListTags)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireAuth())

	can := deps.AbilityMiddleware.RequireCan
	canOwn := deps.AbilityMiddleware.RequireCanOwn

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.PUT("/users/:id", userHandler.Update, canOwn(ability.ActionUpdate, ability.SubjectUser, "id"))

	// Catalog management is admin-only via the manage-all rule.
	api.POST("/products", productHandler.Create, can(ability.ActionCreate, ability.SubjectProduct))
	api.PUT("/products/:id", productHandler.Update, can(ability.ActionUpdate, ability.SubjectProduct))
	api.DELETE("/products/:id", productHandler.Delete, can(ability.ActionDelete, ability.SubjectProduct))
	api.POST("/categories", taxonomyHandler.CreateCategory, can(ability.ActionCreate, ability.SubjectCategory))
	api.PUT("/categories/:id", taxonomyHandler.UpdateCategory, can(ability.ActionUpdate, ability.SubjectCategory))
	api.DELETE("/categories/:id", taxonomyHandler.DeleteCategory, can(ability.ActionDelete, ability.SubjectCategory))
	api.POST("/tags", taxonomyHandler.CreateTag, can(ability.ActionCreate, ability.SubjectTag))
	api.DELETE("/tags/:id", taxonomyHandler.DeleteTag, can(ability.ActionDelete, ability.SubjectTag))

	// Cart and address creation check ownership in the handler because the
	// resource is the caller's own before it exists.
	api.GET("/cart", cartHandler.Get)
	api.PUT("/cart", cartHandler.Put)

	api.POST("/orders", orderHandler.Create, can(ability.ActionCreate, ability.SubjectOrder))
	api.GET("/orders", orderHandler.List, can(ability.ActionView, ability.SubjectOrder))
	api.GET("/orders/:id", orderHandler.Get, canOwn(ability.ActionRead, ability.SubjectOrder, "id"))
	api.GET("/orders/:id/invoice", orderHandler.Invoice, canOwn(ability.ActionRead, ability.SubjectInvoice, "id"))

	api.POST("/addresses", addressHandler.Create)
	api.GET("/addresses", addressHandler.List, can(ability.ActionView, ability.SubjectDeliveryAddress))
	api.GET("/addresses/:id", addressHandler.Get, canOwn(ability.ActionRead, ability.SubjectDeliveryAddress, "id"))
	api.PUT("/addresses/:id", addressHandler.Update, canOwn(ability.ActionUpdate, ability.SubjectDeliveryAddress, "id"))
	api.DELETE("/addresses/:id", addressHandler.Delete, canOwn(ability.ActionDelete, ability.SubjectDeliveryAddress, "id"))

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
