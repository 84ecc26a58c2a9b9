package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/ports"
)

// AdminHandler handles the /admin routes.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListAll returns every user's todos.
//
// @Summary      List all todos
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Router       /admin/todos [get]
func (h *AdminHandler) ListAll(c echo.Context) error {
	todos, err := h.service.ListAll(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Delete removes any todo.
//
// @Summary      Delete any todo
// @Tags         admin
// @Security     BearerAuth
// @Param        todo_id  path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/todos/delete-todo/{todo_id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	todoID, err := todoIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), identity(c), todoID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
