package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Sign in",
		Description: "Signs a user in by email, replacing any previous session",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Sign out",
		Description: "Clears the current session",
		Tags:        []string{"Auth"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Description: "Returns the signed-in user, if any",
		Tags:        []string{"Auth"},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email" doc:"Email address"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// UserOutput wraps a single user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// CurrentUserResponse contains the session payload. User is null when
// nobody is signed in.
type CurrentUserResponse struct {
	User *UserResponse `json:"user" doc:"Signed-in user, or null"`
}

// CurrentUserOutput wraps the session response for Huma.
type CurrentUserOutput struct {
	Body CurrentUserResponse
}

// LogoutOutput is the empty logout response.
type LogoutOutput struct {
	Status int
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*UserOutput, error) {
	user, err := s.services.Directory.Login(ctx, input.Body.Email)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*LogoutOutput, error) {
	if err := s.services.Directory.Logout(ctx); err != nil {
		return nil, err
	}
	return &LogoutOutput{Status: http.StatusNoContent}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*CurrentUserOutput, error) {
	user, err := s.services.Directory.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	resp := CurrentUserResponse{}
	if user != nil {
		u := toUserResponse(user)
		resp.User = &u
	}
	return &CurrentUserOutput{Body: resp}, nil
}
