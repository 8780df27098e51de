package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/auth"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
)

var (
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", apperror.ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("invalid or expired refresh token: %w", apperror.ErrUnauthorized)
	ErrUserDisabled        = fmt.Errorf("user is disabled: %w", apperror.ErrUnauthorized)
	ErrEmailNotVerified    = fmt.Errorf("google account email is not verified: %w", apperror.ErrUnauthorized)
	ErrGoogleNotConfigured = fmt.Errorf("google sign-in is not configured: %w", apperror.ErrInvalid)
)

type UserService interface {
	Get(ctx context.Context, filters query.Filters) (*User, error)
	List(ctx context.Context, opts query.Options) ([]User, error)
	Register(ctx context.Context, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error)
	Disable(ctx context.Context, id int64) (*User, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
	CheckActive(ctx context.Context, id int64) error

	Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Revoke(ctx context.Context, refreshToken string) error
	GoogleLogin(ctx context.Context, code string) (*TokenResponse, error)
}

type userService struct {
	db         *gorm.DB
	repo       UserRepository
	google     IdentityProvider
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(db *gorm.DB, repo UserRepository, google IdentityProvider) UserService {
	return &userService{
		db:         db,
		repo:       repo,
		google:     google,
		accessTTL:  config.GetDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		refreshTTL: config.GetDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken() error {
	return apperror.Invalid("email", "is already registered")
}

func (s *userService) Get(ctx context.Context, filters query.Filters) (*User, error) {
	return s.repo.GetOne(ctx, filters)
}

func (s *userService) List(ctx context.Context, opts query.Options) ([]User, error) {
	return s.repo.List(ctx, opts)
}

func (s *userService) Register(ctx context.Context, dto CreateUserDTO) (*User, error) {
	log := config.WithContext(ctx)

	email := normalizeEmail(dto.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		log.WithField("email", email).Warn("Email already registered")
		return nil, emailTaken()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		FullName:    strings.TrimSpace(dto.FullName),
		DisplayName: strings.TrimSpace(dto.DisplayName),
		Email:       email,
		Password:    hash,
		Role:        auth.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken()
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("new_user_id", u.ID).Info("User registered")
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if dto.FullName != nil {
		changes["full_name"] = strings.TrimSpace(*dto.FullName)
	}
	if dto.DisplayName != nil {
		changes["display_name"] = strings.TrimSpace(*dto.DisplayName)
	}
	if dto.Email != nil {
		email := normalizeEmail(*dto.Email)
		if email != u.Email {
			if _, err := s.repo.GetByEmail(ctx, email); err == nil {
				return nil, emailTaken()
			} else if !errors.Is(err, apperror.ErrNotFound) {
				return nil, err
			}
			changes["email"] = email
		}
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hash
	}

	if err := s.repo.Update(ctx, u, changes); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, emailTaken()
		}
		log.WithError(err).Error("Failed to update user")
		return nil, err
	}
	return u, nil
}

// Disable keeps the row for referential history and revokes every refresh
// token the user still holds.
func (s *userService) Disable(ctx context.Context, id int64) (*User, error) {
	log := config.WithContext(ctx)

	var u *User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		if u, err = repo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, u, map[string]interface{}{"disabled": true}); err != nil {
			return err
		}
		return repo.RevokeAllRefreshTokens(ctx, u.ID)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("disabled_user_id", id).Info("User disabled")
	return u, nil
}

func (s *userService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// CheckActive rejects tokens whose user was disabled or removed after the
// token was issued.
func (s *userService) CheckActive(ctx context.Context, id int64) error {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return ErrUserDisabled
	}
	if err != nil {
		return err
	}
	if u.Disabled {
		return ErrUserDisabled
	}
	return nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.Password, dto.Password) {
		log.WithField("login_user_id", u.ID).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		return nil, ErrUserDisabled
	}

	return s.issueTokens(ctx, s.repo, u)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	var resp *TokenResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		stored, err := repo.GetRefreshToken(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		if stored.Revoked || stored.ExpiresAt <= time.Now().Unix() {
			log.WithField("token_user_id", stored.UserID).Warn("Revoked or expired refresh token presented")
			return ErrInvalidRefreshToken
		}

		u, err := repo.GetByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		if u.Disabled {
			return ErrUserDisabled
		}

		if err := repo.RevokeRefreshToken(ctx, stored.ID); err != nil {
			return err
		}

		resp, err = s.issueTokens(ctx, repo, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *userService) Revoke(ctx context.Context, refreshToken string) error {
	id, err := uuid.Parse(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil
	}
	return s.repo.RevokeRefreshToken(ctx, id)
}

// GoogleLogin signs in the user owning the Google account's email, creating
// one on first sign-in.
func (s *userService) GoogleLogin(ctx context.Context, code string) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	if s.google == nil {
		return nil, ErrGoogleNotConfigured
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, fmt.Errorf("google sign-in failed: %w", apperror.ErrUnauthorized)
	}
	if !profile.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	email := normalizeEmail(profile.Email)
	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			name = email
		}
		u = &User{
			FullName:    name,
			DisplayName: strings.TrimSpace(profile.GivenName),
			Email:       email,
			Role:        auth.RoleUser,
		}
		if err := s.repo.Create(ctx, u); err != nil {
			log.WithError(err).Error("Failed to create user from google profile")
			return nil, err
		}
		log.WithField("new_user_id", u.ID).Info("User created from google sign-in")
	case err != nil:
		return nil, err
	}

	if u.Disabled {
		return nil, ErrUserDisabled
	}
	return s.issueTokens(ctx, s.repo, u)
}

func (s *userService) issueTokens(ctx context.Context, repo UserRepository, u *User) (*TokenResponse, error) {
	access, err := auth.GenerateJWT(u.ID, u.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh := &RefreshToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL).Unix(),
	}
	if err := repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh.ID.String(),
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         u,
	}, nil
}
