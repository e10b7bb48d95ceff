package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bragboard/bragboard-server/internal/domain"
	domainerrors "github.com/bragboard/bragboard-server/internal/errors"
	"github.com/bragboard/bragboard-server/internal/id"
	"github.com/bragboard/bragboard-server/internal/store"
	"github.com/bragboard/bragboard-server/internal/validation"
)

// DirectoryService manages the employee directory and the sign-in slot.
type DirectoryService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(store *store.Store, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// RegisterParams describes a new directory entry.
type RegisterParams struct {
	Name       string      `json:"name" validate:"required,min=1,max=100"`
	Email      string      `json:"email" validate:"required,email"`
	Department string      `json:"department" validate:"max=100"`
	Role       domain.Role `json:"role"`
}

// Register adds a user to the directory. Registering an email that
// already exists is benign: the existing record is returned unchanged.
func (s *DirectoryService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, domainerrors.Validation("name cannot be empty")
	}
	role := params.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.Valid() {
		return nil, domainerrors.Validationf("unknown role %q", params.Role)
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, fmt.Errorf("generating user id: %w", err)
	}

	user := &domain.User{
		ID:         userID,
		Name:       strings.TrimSpace(params.Name),
		Email:      params.Email,
		Department: strings.TrimSpace(params.Department),
		Role:       role,
	}

	err = s.store.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailExists) {
		existing, lookupErr := s.store.GetUserByEmail(ctx, params.Email)
		if lookupErr != nil {
			return nil, fmt.Errorf("loading existing user: %w", lookupErr)
		}
		s.logger.Debug("registration for existing email, returning directory entry",
			"email", existing.Email)
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "department", user.Department)
	return user, nil
}

// GetUser returns a single directory entry.
func (s *DirectoryService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("user %s not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// ListUsers returns the full directory in canonical order.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// UpdateUserParams carries the editable profile fields. Nil means leave
// the field unchanged.
type UpdateUserParams struct {
	Name       *string
	Email      *string
	Department *string
	Role       *domain.Role
}

// UpdateUser edits a directory entry. If the edited user is currently
// signed in, the session snapshot is refreshed in the same write.
func (s *DirectoryService) UpdateUser(ctx context.Context, userID string, params UpdateUserParams) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		if strings.TrimSpace(*params.Email) == "" {
			return nil, domainerrors.Validation("email cannot be empty")
		}
		user.Email = *params.Email
	}
	if params.Department != nil {
		user.Department = strings.TrimSpace(*params.Department)
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, domainerrors.Validationf("unknown role %q", *params.Role)
		}
		user.Role = *params.Role
	}

	err = s.store.UpdateUser(ctx, user)
	if errors.Is(err, store.ErrEmailExists) {
		return nil, domainerrors.AlreadyExists("email already registered")
	}
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("user %s not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return user, nil
}

// Login signs a user in by email, replacing any previous session.
func (s *DirectoryService) Login(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFound("no account with that email")
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.store.SetCurrentUser(ctx, user); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	s.logger.Info("user signed in", "user_id", user.ID)
	return user, nil
}

// Logout clears the session slot. Logging out with nobody signed in is
// a no-op.
func (s *DirectoryService) Logout(ctx context.Context) error {
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil when nobody is.
func (s *DirectoryService) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := s.store.GetCurrentUser(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return user, nil
}
