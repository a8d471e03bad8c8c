package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/config"
	"github.com/Hllyys/FullStackCase/internal/core/domain"
	"github.com/Hllyys/FullStackCase/internal/pkg/jwt"
	"github.com/Hllyys/FullStackCase/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	roleRepo         repositories.RoleRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName  string
	Email     string
	Password  string
	RoleID    uint
	ManagerID *uint
}

// LoginInput represents login input
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// AuthResponse represents a successful login
type AuthResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         *models.UserResponse `json:"user"`
}

// RefreshResponse carries the new access token. The refresh token itself is
// not rotated: it stays valid until logout or its own expiry.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Register creates a new user. The plaintext password is hashed before the
// user row is written and never stored or returned.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to check email", err)
	}
	if exists {
		return nil, domain.ErrEmailInUse
	}

	if _, err := s.roleRepo.GetByID(ctx, input.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to check role", err)
	}

	managerID, err := s.normalizeManager(ctx, input.ManagerID)
	if err != nil {
		return nil, err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to hash password", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: hashed,
		RoleID:       input.RoleID,
		ManagerID:    managerID,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to create user", err)
	}

	log.Printf("✅ User registered: %s", user.Email)
	return user.ToResponse(), nil
}

// Login authenticates a user and issues one access token and one refresh
// token. The refresh token's digest is persisted before Login returns, so a
// returned token is always already revocable.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password, so callers cannot probe
			// which emails exist.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to load user", err)
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID, user.RoleID, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to sign access token", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, uuid.New().String(), s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to sign refresh token", err)
	}

	// Read the expiry back off the signed token itself so the stored row and
	// the signature cannot drift apart.
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to decode refresh token", err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if input.IP != "" {
		ip := input.IP
		record.CreatedByIP = &ip
	}

	if err := s.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to store refresh token", err)
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
	}, nil
}

// Refresh exchanges a valid, still-active refresh token for a new access
// token. Signature validity alone is not enough: the token's digest must
// still have an active store record, which is what makes logout effective.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	row, err := s.refreshTokenRepo.GetActiveByHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to look up refresh token", err)
	}
	if row.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to load user", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID, user.RoleID, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to sign access token", err)
	}

	return &RefreshResponse{AccessToken: accessToken}, nil
}

// Logout revokes the refresh token. Idempotent: an unknown or already-revoked
// token still reports success.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		return domain.Wrap(domain.KindInternal, "Failed to revoke refresh token", err)
	}
	return nil
}

// LogoutAll revokes every active refresh token of a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return domain.Wrap(domain.KindInternal, "Failed to revoke sessions", err)
	}
	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token for the auth middleware
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.AccessClaims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// normalizeManager maps empty/zero manager input to absent and checks that a
// named manager exists.
func (s *AuthService) normalizeManager(ctx context.Context, managerID *uint) (*uint, error) {
	if managerID == nil || *managerID == 0 {
		return nil, nil
	}
	if _, err := s.userRepo.GetByID(ctx, *managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrManagerNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to check manager", err)
	}
	return managerID, nil
}
