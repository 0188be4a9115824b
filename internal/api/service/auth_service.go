package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"traderizz/internal/api/config"
	"traderizz/internal/api/dto"
	"traderizz/internal/api/repository"
	"traderizz/internal/entity"
	"traderizz/pkg/common"
	"traderizz/pkg/logger"
	"traderizz/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var (
	// ErrEmailTaken is returned when signing up with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for expired, revoked or malformed tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService defines the interface for account and session management.
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Session(ctx context.Context, userID uint) (*dto.SessionResponse, error)
	ValidateAccessToken(token string) (uint, error)
}

// NewAuthService creates a new auth service. Refresh tokens live in Redis
// under a TTL matching the configured refresh expiry.
func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, redisClient *redis.Client, cfg config.Config, logger *logger.Logger) (AuthService, error) {
	accessExpiry, err := time.ParseDuration(cfg.Auth.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid access_token_expiry: %w", err)
	}
	refreshExpiry, err := time.ParseDuration(cfg.Auth.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh_token_expiry: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth jwt_secret is required")
	}
	return &authService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		redisClient:   redisClient,
		jwtSecret:     []byte(cfg.Auth.JWTSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		logger:        logger,
	}, nil
}

type authService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	redisClient   *redis.Client
	jwtSecret     []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	logger        *logger.Logger
}

// SignUp registers a new account and seeds an empty profile for it.
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Email: req.Email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, &entity.Profile{UserID: user.ID, Email: user.Email}); err != nil {
		s.logger.Error("Failed to seed profile", logger.ErrorField(err), logger.Field("user_id", user.ID))
		return nil, err
	}

	s.logger.Info("User signed up", logger.Field("user_id", user.ID))
	return &dto.SessionResponse{UserID: user.ID, Email: user.Email}, nil
}

// SignIn verifies the credentials and issues an access/refresh token pair.
func (s *authService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// SignOut revokes the refresh token. Revoking an unknown token is not an error.
func (s *authService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.redisClient.Del(ctx, common.RedisKeyRefreshTokenPrefix+refreshToken).Err()
}

// Refresh rotates the refresh token and issues a fresh token pair.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	key := common.RedisKeyRefreshTokenPrefix + refreshToken
	userIDStr, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Single use: the old token is gone before the new pair is handed out.
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, uint(userID))
}

// Session returns the identity behind a validated access token.
func (s *authService) Session(ctx context.Context, userID uint) (*dto.SessionResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &dto.SessionResponse{UserID: user.ID, Email: user.Email}, nil
}

// ValidateAccessToken parses and verifies a JWT access token and returns the
// user ID it was issued for.
func (s *authService) ValidateAccessToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

func (s *authService) issueTokens(ctx context.Context, userID uint) (*dto.TokenResponse, error) {
	now := utils.TimeNowUTC()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(s.accessExpiry).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	key := common.RedisKeyRefreshTokenPrefix + refreshToken
	if err := s.redisClient.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.refreshExpiry).Err(); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpiry.Seconds()),
	}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
