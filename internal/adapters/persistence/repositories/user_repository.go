package repositories

import (
	"context"
	"strings"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID with its role joined
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email (emails are stored lower-cased)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves all fields of a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user row. Refresh tokens cascade via the FK constraint;
// the service clears reports' manager links first.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// sortColumns maps the accepted sortBy values to SQL order expressions.
// "role" orders by the joined role name, "status" by is_active.
var sortColumns = map[string]string{
	"fullName":  "users.full_name",
	"email":     "users.email",
	"createdAt": "users.created_at",
	"role":      "roles.name",
	"status":    "users.is_active",
}

// List returns one page of users plus the total row count for the same
// filters. Identical filter conditions feed both queries so the count and the
// page can never disagree.
func (r *userRepository) List(ctx context.Context, q ListQuery) ([]*models.User, int64, error) {
	base := r.filtered(ctx, q.Filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "users.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	var users []*models.User
	err := base.Session(&gorm.Session{}).
		Preload("Role").
		Order(column + " " + direction).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// filtered builds the shared WHERE/JOIN clause for List. The roles join is
// always present since role sort and role filter both need it and the join is
// one-to-one.
func (r *userRepository) filtered(ctx context.Context, f ListFilters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id")

	if f.FullName != "" {
		q = q.Where("LOWER(users.full_name) LIKE ?", "%"+strings.ToLower(f.FullName)+"%")
	}
	if f.Email != "" {
		q = q.Where("LOWER(users.email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.Role != "" {
		q = q.Where("LOWER(roles.name) = ?", strings.ToLower(f.Role))
	}
	switch f.Status {
	case "active":
		q = q.Where("users.is_active = ?", true)
	case "inactive":
		q = q.Where("users.is_active = ?", false)
	}

	return q
}

// ListByManagerIDs returns the direct reports of the given managers, newest
// first, with roles joined.
func (r *userRepository) ListByManagerIDs(ctx context.Context, managerIDs []uint) ([]*models.User, error) {
	if len(managerIDs) == 0 {
		return nil, nil
	}
	var users []*models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("manager_id IN ?", managerIDs).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsByEmail checks if an email is taken (lower-cased comparison)
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// ClearManager detaches all reports of a manager before the manager row is
// deleted, so reports survive with an absent manager link.
func (r *userRepository) ClearManager(ctx context.Context, managerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}
