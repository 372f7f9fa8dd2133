package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/transport"

	"go.uber.org/zap"
)

// TokenIssuer is satisfied by *auth.Tokens.
type TokenIssuer interface {
	Generate(userID uint, email string, isStaff bool) (string, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	Me(ctx context.Context, userID uint) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Register"))

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return nil, transport.FieldErrors{"username": {ErrUsernameExists.Error()}}
		}
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

// Login checks credentials and issues an access token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, in LoginInput) (string, error) {
	fe := transport.FieldErrors{}
	if in.Username == "" {
		fe.Add("username", "This field is required.")
	}
	if in.Password == "" {
		fe.Add("password", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return "", err
	}

	u, err := s.repo.GetByUsername(ctx, in.Username)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPasswordHash(in.Password, u.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(u.ID, u.Email, u.IsStaff)
}

func (s *service) Me(ctx context.Context, userID uint) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func validateRegister(in RegisterInput) error {
	fe := transport.FieldErrors{}
	if in.Username == "" {
		fe.Add("username", "This field is required.")
	}
	switch {
	case in.Password == "":
		fe.Add("password", "This field is required.")
	case len(in.Password) < minPasswordLength:
		fe.Add("password", "This password is too short. It must contain at least 8 characters.")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			fe.Add("email", "Enter a valid email address.")
		}
	}
	return fe.Err()
}
