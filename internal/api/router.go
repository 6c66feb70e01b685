package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	contribsession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nesthome/nesthome-web/internal/api/handler"
	"github.com/nesthome/nesthome-web/internal/api/middleware"
	"github.com/nesthome/nesthome-web/internal/core/domain"
	"github.com/nesthome/nesthome-web/internal/core/service"
	websession "github.com/nesthome/nesthome-web/internal/session"
)

// Dependencies carries everything the router wires together. Mongo and
// Redis may be nil; the readiness probe reports them as disabled.
type Dependencies struct {
	Registry *websession.Registry
	Catalog  *service.CatalogService
	Contact  *service.ContactService
	Store    sessions.Store
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("nesthome_web"))

	// --- Operational routes (no session handling) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Browser routes: cookie session + auth bootstrap ---
	pages := e.Group("",
		contribsession.Middleware(deps.Store),
		middleware.AuthSession(deps.Registry),
	)

	pageHandler := handler.NewPageHandler(deps.Catalog, deps.Contact)
	authHandler := handler.NewAuthHandler()
	dashHandler := handler.NewDashboardHandler()

	pages.GET("/", pageHandler.Home)
	pages.GET("/about", pageHandler.About)
	pages.GET("/services", pageHandler.Services)
	pages.GET("/contact", pageHandler.ContactForm)
	pages.POST("/contact", pageHandler.ContactSubmit)
	pages.GET("/unauthorized", pageHandler.Unauthorized)

	pages.GET("/login", authHandler.LoginForm)
	pages.POST("/login", authHandler.Login)
	pages.GET("/register", authHandler.RegisterForm)
	pages.POST("/register", authHandler.Register)
	pages.POST("/logout", authHandler.Logout)

	pages.GET("/user", dashHandler.User, middleware.Guard(domain.RoleUser))
	pages.GET("/professional", dashHandler.Professional, middleware.Guard(domain.RoleProfessional))
	pages.GET("/admin", dashHandler.Admin, middleware.Guard(domain.RoleAdmin))

	return e, nil
}
