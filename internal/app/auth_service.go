package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"socialnet/internal/model"
	"socialnet/internal/pkg/jwtutil"
	"socialnet/internal/repository"
)

type AuthService struct {
	userRepo      UserStore
	guard         LoginGuard
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Name     string
	LastName string
	Email    string
	Password string
	Nick     string
	Bio      string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

// NewAuthService builds the service. guard may be nil, which disables login
// throttling.
func NewAuthService(userRepo UserStore, guard LoginGuard, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		guard:         guard,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	lastName := strings.TrimSpace(input.LastName)
	email := normalizeKey(input.Email)
	nick := normalizeKey(input.Nick)
	password := input.Password

	if name == "" || lastName == "" || email == "" || nick == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.FindByEmailOrNick(ctx, email, nick)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		LastName:     lastName,
		Nick:         nick,
		Email:        email,
		PasswordHash: hash,
		Bio:          strings.TrimSpace(input.Bio),
		Role:         model.RoleUser,
		Image:        model.DefaultAvatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeKey(input.Email)
	password := input.Password
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	if s.guard != nil {
		locked, err := s.guard.Locked(ctx, email)
		if err != nil {
			log.Warn().Err(err).Msg("login guard lookup failed")
		} else if locked {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.recordFailure(ctx, email)
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredential
	}

	if s.guard != nil {
		if err := s.guard.Reset(ctx, email); err != nil {
			log.Warn().Err(err).Msg("login guard reset failed")
		}
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.RecordFailure(ctx, email); err != nil {
		log.Warn().Err(err).Msg("login guard record failed")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// normalizeKey lower-cases the fields that are unique regardless of case.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
