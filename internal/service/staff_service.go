package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
)

var (
	ErrUnknownRole   = errors.New("unknown staff role")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// StaffService provisions and maintains staff accounts. There is no
// delete: accounts referenced elsewhere are deactivated instead.
type StaffService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewStaffService(userRepo repository.UserRepository, log *zap.Logger) *StaffService {
	return &StaffService{userRepo: userRepo, log: log}
}

// Provision creates a staff account with a bcrypt-hashed credential.
func (s *StaffService) Provision(
	ctx context.Context,
	username, email, password, fullName string,
	role model.UserRole,
) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrUnknownRole
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("staff account provisioned",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(role)),
	)
	return u, nil
}

func (s *StaffService) UpdateProfile(ctx context.Context, id uuid.UUID, email, fullName string) error {
	updates := map[string]any{}
	if email != "" {
		updates["email"] = email
	}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	return s.userRepo.Update(ctx, id, updates)
}

func (s *StaffService) ChangeRole(ctx context.Context, id uuid.UUID, role model.UserRole) error {
	if !model.ValidRole(role) {
		return ErrUnknownRole
	}
	return s.userRepo.Update(ctx, id, map[string]any{"role": role})
}

func (s *StaffService) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.Update(ctx, id, map[string]any{"password_hash": string(hash)})
}

func (s *StaffService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.SetActive(ctx, id, false)
}

func (s *StaffService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.SetActive(ctx, id, true)
}
