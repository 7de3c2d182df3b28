package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/charityhub/internal/auth"
	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/user/dto"
	"anoa.com/charityhub/internal/modules/user/repository"
	"anoa.com/charityhub/pkg/apperror"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperror.Unauthorized("invalid credentials")

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo      repository.UserRepository
	tokens    *auth.TokenManager
	cost      int
	dummyHash []byte
}

func NewAuthService(repo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return newAuthService(repo, tokens, bcrypt.DefaultCost)
}

func newAuthService(repo repository.UserRepository, tokens *auth.TokenManager, cost int) *authService {
	// Compared against when the username is unknown so both login failures cost the same.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("charityhub-dummy-password"), cost)
	if err != nil {
		zap.L().Warn("failed to build dummy password hash", zap.Error(err))
	}

	return &authService{
		repo:      repo,
		tokens:    tokens,
		cost:      cost,
		dummyHash: dummyHash,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperror.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("username or email already exists")
		}
		return nil, err
	}

	zap.L().Info("user registered", zap.String("username", user.Username), zap.String("role", user.Role))

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
