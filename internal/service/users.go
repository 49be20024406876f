package service

import (
	"context"                          // Request scoped cancellation
	"fmt"                              // Message formatting
	"strings"                          // Input normalization
	"time_manager/internal/domain"     // Domain models
	"time_manager/internal/repository" // Data access
	"time_manager/internal/utils"      // Shared helpers

	"github.com/sirupsen/logrus" // Logging library
)

const msgUsernameTaken = "El nombre de usuario ya está en uso."

// UserInput registers a user account.
type UserInput struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`           // Plain password, hashed before storage
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin user"` // admin or user, defaults to user
}

// UserPatch edits a user account; empty fields keep their stored value.
type UserPatch struct {
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin user"` // admin or user, defaults to user
}

// Users manages accounts.
type Users struct {
	repos *repository.Set // Data access
}

func NewUsers(repos *repository.Set) *Users {
	return &Users{repos: repos}
}

// Register creates an account with a hashed password. Role defaults to user.
func (s *Users) Register(ctx context.Context, in UserInput) (uint, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = normalizeUsername(in.Username)
	if err := validateInput(in); err != nil {
		return 0, err
	}
	existing, err := s.repos.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, Conflict(msgUsernameTaken)
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	user := domain.User{Name: in.Name, Username: in.Username, Password: hash, Role: role}
	if err := s.repos.Users.Create(ctx, &user); err != nil {
		return 0, uniqueViolation(err, msgUsernameTaken)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username, "role": user.Role}).Info("User registered")
	return user.ID, nil
}

func (s *Users) List(ctx context.Context) ([]domain.User, error) {
	return s.repos.Users.List(ctx)
}

// GetByUsername returns nil when no account has the username.
func (s *Users) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, nil
	}
	return s.repos.Users.FindByUsername(ctx, username)
}

// Page returns the accounts of a 1-based page and the total count.
func (s *Users) Page(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	return s.repos.Users.Page(ctx, (page-1)*size, size)
}

// Get returns nil when the user does not exist.
func (s *Users) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.repos.Users.FindByID(ctx, id)
}

// Edit applies the non-empty fields of patch. A new password is hashed before storing.
func (s *Users) Edit(ctx context.Context, id uint, patch UserPatch) (int64, error) {
	if err := validateInput(patch); err != nil {
		return 0, err
	}
	user, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, NotFound("Usuario no encontrado.")
	}

	fields := map[string]any{}
	if name := strings.TrimSpace(patch.Name); name != "" {
		fields["name"] = name
	}
	if username := normalizeUsername(patch.Username); username != "" && username != user.Username {
		other, err := s.repos.Users.FindByUsernameExcludingID(ctx, username, id)
		if err != nil {
			return 0, err
		}
		if other != nil {
			return 0, Conflict(msgUsernameTaken)
		}
		fields["username"] = username
	}
	if patch.Password != "" {
		hash, err := utils.HashPassword(patch.Password)
		if err != nil {
			return 0, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = hash
	}
	if patch.Role != "" {
		fields["role"] = patch.Role
	}
	if len(fields) == 0 {
		return 0, nil
	}

	n, err := s.repos.Users.Update(ctx, id, fields)
	if err != nil {
		return 0, uniqueViolation(err, msgUsernameTaken)
	}
	logrus.WithFields(logrus.Fields{"user_id": id, "fields": len(fields)}).Info("User updated")
	return n, nil
}

// Delete removes the account and its project and habit links. Accounts that still own
// activity logs are kept.
func (s *Users) Delete(ctx context.Context, id uint) (int64, error) {
	exists, err := s.repos.Users.Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound(fmt.Sprintf("No se encontró el usuario con id: %d", id))
	}
	logs, err := s.repos.ActivityLogs.CountByUser(ctx, id)
	if err != nil {
		return 0, err
	}
	if logs > 0 {
		return 0, Conflict("El usuario tiene registros de actividad asociados.")
	}
	n, err := s.repos.Users.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	logrus.WithField("user_id", id).Info("User deleted")
	return n, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
