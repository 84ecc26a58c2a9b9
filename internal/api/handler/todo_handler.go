package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/ports"
)

// TodoHandler handles the self-scoped todo endpoints.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List returns the caller's todos.
//
// @Summary      List own todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Router       /todos/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	todos, err := h.service.List(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Get returns one of the caller's todos.
//
// @Summary      Read todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        todo_id  path      int  true  "Todo ID"
// @Success      200      {object}  domain.Todo
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /todos/todo/{todo_id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}
	todo, err := h.service.Get(c.Request().Context(), identity(c), todoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Create adds a todo owned by the caller.
//
// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      todoRequest  true  "Todo"
// @Success      201   {object}  domain.Todo
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /todos/todo [post]
func (h *TodoHandler) Create(c echo.Context) error {
	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	todo, err := h.service.Create(c.Request().Context(), identity(c), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// Update replaces one of the caller's todos.
//
// @Summary      Update todo
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        todo_id  path  int          true  "Todo ID"
// @Param        body     body  todoRequest  true  "Todo"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /todos/todo/{todo_id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}
	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), identity(c), todoID, req.toInput()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the caller's todos.
//
// @Summary      Delete todo
// @Tags         todos
// @Security     BearerAuth
// @Param        todo_id  path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/todo/{todo_id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), identity(c), todoID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
