package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/apperr"
	"stockroom/internal/config"
	"stockroom/internal/logger"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

// bcrypt ignores input past this length, so longer passwords are refused instead of truncated.
const maxPasswordBytes = 72

// AuthService handles registration, credential checks and bearer tokens.
type AuthService struct {
	userRepo   repositories.UserRepository
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	bcryptCost int
	dummyHash  []byte
	log        *logger.Logger
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, cfg config.AuthConfig, events EventPublisher, log *logger.Logger) (*AuthService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the username is unknown so both failure paths do the same work.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("stockroom-unknown-user"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		events:     events,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenDurat: ttl,
		bcryptCost: cost,
		dummyHash:  dummyHash,
		log:        log.With("service", "AuthService"),
	}, nil
}

// RegisterUser hashes the password and stores a new user.
// A taken username fails with apperr.ErrDuplicateUsername.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "is required"
	} else if len(username) > 100 {
		fields["username"] = "must be at most 100 characters"
	}
	if password == "" {
		fields["password"] = "is required"
	} else if len(password) > maxPasswordBytes {
		fields["password"] = fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	publishEvent(s.log, s.events, models.EventUserRegistered, user.ID, user.Username)
	return user, nil
}

// VerifyCredentials returns the caller identity when the username/password pair matches.
// The username is trimmed the same way RegisterUser stores it.
// An unknown username and a wrong password both fail with apperr.ErrAuthentication.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.Identity, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperr.ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrAuthentication
	}

	return &models.Identity{UserID: user.ID, Username: user.Username}, nil
}

// LoginUser verifies the credentials and returns a signed token for the identity.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, *models.Identity, error) {
	identity, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.IssueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// IssueToken signs an HS256 JWT for the identity.
func (s *AuthService) IssueToken(identity *models.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  identity.UserID,
		"username": identity.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the identity it was issued for.
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, apperr.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperr.ErrUnauthenticated)
	}

	// Numeric claims decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok || userID < 1 {
		return nil, fmt.Errorf("invalid token: bad user_id claim: %w", apperr.ErrUnauthenticated)
	}
	username, _ := claims["username"].(string)

	return &models.Identity{UserID: uint(userID), Username: username}, nil
}

// Authenticate validates the token and confirms its user still exists.
// Tokens of deleted users fail with apperr.ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Identity, error) {
	identity, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("user %d no longer exists: %w", identity.UserID, apperr.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to look up token user: %w", err)
	}
	return &models.Identity{UserID: user.ID, Username: user.Username}, nil
}
