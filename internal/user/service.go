package user

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/validate"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *User, error)
	Login(ctx context.Context, input LoginInput) (string, *User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	dot := strings.LastIndex(email, ".")
	return dot > at+1 && dot < len(email)-1
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	log := logger.FromCtx(ctx)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var c validate.Collector
	if input.Name == "" {
		c.Add("name", "Name is required.")
	}
	if input.Email == "" {
		c.Add("email", "Email is required.")
	} else if !validEmail(input.Email) {
		c.Add("email", "Please provide a valid email address.")
	}
	if input.Password == "" {
		c.Add("password", "Password is required.")
	} else if len(input.Password) < 6 {
		c.Add("password", "Password must be at least 6 characters long.")
	}
	if err := c.Err(); err != nil {
		return "", nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return "", nil, ErrEmailExists
	} else if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, input.Name, input.Email, hash, RoleCustomer)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", nil, ErrEmailExists
		}
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (string, *User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var c validate.Collector
	if input.Email == "" {
		c.Add("email", "Email is required.")
	} else if !validEmail(input.Email) {
		c.Add("email", "Please provide a valid email address.")
	}
	if input.Password == "" {
		c.Add("password", "Password is required.")
	}
	if err := c.Err(); err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(input.Password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}
