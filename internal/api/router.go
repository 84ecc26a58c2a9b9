package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
	infrahttp "github.com/todoapp/todo-service/internal/infrastructure/http"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Todos    ports.TodoService
	Admin    ports.AdminService
	Verifier ports.TokenVerifier

	TokenTTL     time.Duration
	CookieSecure bool

	// Mongo and Redis back the readiness probe; either may be nil.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "todo",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.TokenTTL, d.CookieSecure)
	userHandler := handler.NewUserHandler(d.Users)
	todoHandler := handler.NewTodoHandler(d.Todos)
	adminHandler := handler.NewAdminHandler(d.Admin)
	pageHandler := handler.NewPageHandler(d.Todos)

	requireUser := middleware.Auth(d.Verifier)
	requirePage := middleware.PageAuth(d.Verifier, log)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/todos/todo-page")
	})

	// --- Auth routes (public) ---
	auth := e.Group("/auth")
	auth.POST("/token", authHandler.Token)
	auth.POST("/create-user", authHandler.CreateUser)
	auth.GET("/login-page", pageHandler.Login)
	auth.GET("/register-page", pageHandler.Register)

	// --- User routes ---
	user := e.Group("/user", requireUser, middleware.Require(security.OpSelfScoped))
	user.GET("/", userHandler.Me)
	user.PUT("/password", userHandler.ChangePassword)
	user.PUT("/phonenumber/:phone_number", userHandler.UpdatePhoneNumber)

	// --- Todo pages (cookie only) ---
	e.GET("/todos/todo-page", pageHandler.Todos, requirePage)
	e.GET("/todos/add-todo-page", pageHandler.AddTodo, requirePage)
	e.GET("/todos/edit-todo-page/:todo_id", pageHandler.EditTodo, requirePage)

	// --- Todo routes ---
	todos := e.Group("/todos", requireUser, middleware.Require(security.OpSelfScoped))
	todos.GET("/", todoHandler.List)
	todos.POST("/todo", todoHandler.Create)
	todos.GET("/todo/:todo_id", todoHandler.Get)
	todos.PUT("/todo/:todo_id", todoHandler.Update)
	todos.DELETE("/todo/:todo_id", todoHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/admin", requireUser, middleware.Require(security.OpAdminOnly))
	admin.GET("/todos", adminHandler.ListAll)
	admin.DELETE("/todos/delete-todo/:todo_id", adminHandler.Delete)

	// --- Operational routes ---
	infrahttp.RegisterProbes(e, d.Mongo, d.Redis)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
