package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "registerUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users",
		Summary:     "Register user",
		Description: "Adds a user to the directory; an existing email returns the existing entry",
		Tags:        []string{"Users"},
	}, s.handleRegisterUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns the full directory, oldest entries first",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a directory entry by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Edits a directory entry; a signed-in user editing themselves refreshes the session",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)
}

// === DTOs ===

// RegisterUserRequest is the request body for adding a directory entry.
type RegisterUserRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100" doc:"Display name"`
	Email      string `json:"email" validate:"required,email" doc:"Email address, unique case-insensitively"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100" doc:"Department name"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=admin employee" doc:"admin or employee, defaults to employee"`
}

// RegisterUserInput wraps the register request for Huma.
type RegisterUserInput struct {
	Body RegisterUserRequest
}

// ListUsersResponse contains the directory listing.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"Directory entries in creation order"`
}

// ListUsersOutput wraps the directory listing for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// GetUserInput contains parameters for fetching a user.
type GetUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for editing a directory entry.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Display name"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email" doc:"Email address"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100" doc:"Department name"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin employee" doc:"admin or employee"`
}

// UpdateUserInput wraps the update request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

// === Handlers ===

func (s *Server) handleRegisterUser(ctx context.Context, input *RegisterUserInput) (*UserOutput, error) {
	user, err := s.services.Directory.Register(ctx, service.RegisterParams{
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Department: input.Body.Department,
		Role:       domain.Role(input.Body.Role),
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.Directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{Body: ListUsersResponse{Users: toUserResponses(users)}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	user, err := s.services.Directory.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	params := service.UpdateUserParams{
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Department: input.Body.Department,
	}
	if input.Body.Role != nil {
		role := domain.Role(*input.Body.Role)
		params.Role = &role
	}

	user, err := s.services.Directory.UpdateUser(ctx, input.ID, params)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: toUserResponse(user)}, nil
}
