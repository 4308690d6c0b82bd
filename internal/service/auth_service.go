package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"xclone/internal/auth"
	apperrors "xclone/internal/errors"
	"xclone/internal/model"
	"xclone/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// dummyHash is compared against when a login names an unknown user, so both
// failure paths spend the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("xclone-dummy-password"), bcryptCost)

// SignupInput carries the signup form fields.
type SignupInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	// Logout revokes the given session token if it is still valid.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// IsValidEmail reports whether email has the local@domain.tld shape accepted at signup.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Signup validates the input, then hashes the password and stores a new user.
// Checks run in order: email format, username uniqueness, email uniqueness,
// password length.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	// stored names are trimmed, so uniqueness checks must see the same value
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.TrimSpace(in.Username)

	if !IsValidEmail(in.Email) {
		return nil, apperrors.ErrInvalidEmail
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.NewUser(in.FullName, in.Username, in.Email, string(hashedPassword))
	if user == nil {
		return nil, apperrors.ErrInvalidUserData
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.conflictError(ctx, in.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// conflictError decides which unique field a concurrent signup collided on.
func (s *authService) conflictError(ctx context.Context, username string) error {
	if taken, err := s.userRepo.ExistsByUsername(ctx, username); err == nil && taken {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}

// Login checks the password of the named user. Unknown users and wrong
// passwords produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = []byte(user.Password)
	}
	matches := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	if user == nil || !matches {
		return nil, apperrors.ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		// expired or forged tokens are unusable already
		return nil
	}
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
