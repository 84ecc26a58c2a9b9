package handler

import "github.com/todoapp/todo-service/internal/core/ports"

// errorResponse mirrors the envelope written by the HTTP error handler.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Auth ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createUserRequest struct {
	Username    string `json:"username"     validate:"required,max=64"`
	Email       string `json:"email"        validate:"required"`
	FirstName   string `json:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    validate:"required"`
	Role        string `json:"role"         validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password"     validate:"required,max=72"`
}

// --- User ---

type userVerificationRequest struct {
	Password    string `json:"password"     validate:"required,max=72"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// --- Todos ---

type todoRequest struct {
	Title       string `json:"title"       validate:"min=3"`
	Description string `json:"description" validate:"min=3,max=100"`
	Priority    int    `json:"priority"    validate:"gt=0,lt=6"`
	Complete    bool   `json:"complete"`
}

func (r todoRequest) toInput() ports.TodoInput {
	return ports.TodoInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Complete:    r.Complete,
	}
}
