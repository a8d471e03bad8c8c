package repositories

import (
	"context"
	"time"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
)

// ListFilters narrows a user listing. FullName and Email are case-insensitive
// substring matches, Role matches the joined role name case-insensitively,
// Status is "active" or "inactive".
type ListFilters struct {
	FullName string
	Email    string
	Role     string
	Status   string
}

// ListQuery is a normalized, validated listing request.
type ListQuery struct {
	Offset    int
	Limit     int
	SortBy    string // fullName | email | createdAt | role | status
	SortOrder string // asc | desc
	Filters   ListFilters
}

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]*models.User, int64, error)
	ListByManagerIDs(ctx context.Context, managerIDs []uint) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ClearManager(ctx context.Context, managerID uint) error
}

// RoleRepository defines role lookup operations
type RoleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

// RefreshTokenRepository defines refresh token persistence operations. Only
// token digests cross this interface, never plaintext tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetActiveByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) (int64, error)
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}
