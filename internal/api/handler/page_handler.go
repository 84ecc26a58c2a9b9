package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// PageHandler serves the browser page routes as JSON view models.
type PageHandler struct {
	todos ports.TodoService
}

func NewPageHandler(todos ports.TodoService) *PageHandler {
	return &PageHandler{todos: todos}
}

type pageUser struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
	Role     string `json:"user_role"`
}

type pageView struct {
	Page  string         `json:"page"`
	User  *pageUser      `json:"user,omitempty"`
	Todos []*domain.Todo `json:"todos,omitempty"`
	Todo  *domain.Todo   `json:"todo,omitempty"`
}

func viewUser(id *domain.Identity) *pageUser {
	if id == nil {
		return nil
	}
	return &pageUser{Username: id.Subject, ID: id.ID, Role: id.Role}
}

func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, pageView{Page: "login"})
}

func (h *PageHandler) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, pageView{Page: "register"})
}

func (h *PageHandler) Todos(c echo.Context) error {
	id := identity(c)
	todos, err := h.todos.List(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, pageView{Page: "todos", User: viewUser(id), Todos: todos})
}

func (h *PageHandler) AddTodo(c echo.Context) error {
	return c.JSON(http.StatusOK, pageView{Page: "add-todo", User: viewUser(identity(c))})
}

func (h *PageHandler) EditTodo(c echo.Context) error {
	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}
	id := identity(c)
	todo, err := h.todos.Get(c.Request().Context(), id, todoID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, pageView{Page: "edit-todo", User: viewUser(id), Todo: todo})
}

// fail sends auth failures back to the login page and leaves the rest to the
// error handler.
func (h *PageHandler) fail(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrInvalidCredential) {
		return middleware.RedirectToLogin(c)
	}
	return err
}
