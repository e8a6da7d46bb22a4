package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Ezra-Tech-EB/BAHIS/internal/auth"
	"github.com/Ezra-Tech-EB/BAHIS/internal/models"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
)

// UserService manages authority staff accounts. Every operation here is
// admin-only; accounts are deactivated, never deleted.
type UserService struct {
	userRepo repository.IUserRepository
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(ctx context.Context, actor models.Actor, req *models.CreateUserRequest) (*models.User, error) {
	if err := auth.Require(actor, auth.ResourceUsers, auth.ActionManage); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &models.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if req.Name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if !req.Role.IsValid() {
		return nil, &models.ValidationError{Field: "role", Message: "role must be admin, inspector, supervisor or lab_technician"}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, &models.ValidationError{Field: "email", Message: "email is already registered"}
	} else {
		var notFound *models.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	user := &models.User{
		Email:  email,
		Name:   req.Name,
		Role:   req.Role,
		Active: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "email", user.Email, "role", user.Role, "by", actor.ID)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.User, error) {
	if err := auth.Require(actor, auth.ResourceUsers, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if err := auth.Require(actor, auth.ResourceUsers, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// Update changes a user's name or role.
func (s *UserService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	if err := auth.Require(actor, auth.ResourceUsers, auth.ActionManage); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, &models.ValidationError{Field: "name", Message: "name cannot be empty"}
		}
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, &models.ValidationError{Field: "role", Message: "unknown role"}
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user updated", "user_id", user.ID, "role", user.Role, "by", actor.ID)
	return user, nil
}

// Deactivate disables the account. The record and its history stay; the user
// can no longer be assigned to bookings.
func (s *UserService) Deactivate(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.User, error) {
	if err := auth.Require(actor, auth.ResourceUsers, auth.ActionManage); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Active {
		user.Active = false
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	slog.Info("user deactivated", "user_id", user.ID, "by", actor.ID)
	return user, nil
}
