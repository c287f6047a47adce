package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/user/dto"
	"anoa.com/magangportal/internal/modules/user/repository"
	"anoa.com/magangportal/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperror.New(apperror.ErrUnauthorized, "email atau password salah", nil)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the staff credentials and issues a bearer token. Accounts
// without a staff role cannot log in.
func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	if !user.IsStaff() {
		s.logger.Warn("login refused for non-staff account", zap.String("user_id", user.ID.String()))
		return nil, apperror.New(apperror.ErrForbidden, "akun tidak memiliki akses dashboard", nil)
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("pengguna tidak ditemukan")
		}
		return nil, err
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.Name,
		CreatedAt: user.CreatedAt,
	}
}
