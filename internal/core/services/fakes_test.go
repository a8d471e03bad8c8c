package services_test

import (
	"context"
	"time"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/config"

	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

// fakeUserRepo is an in-memory UserRepository. List can be overridden per
// test through listFn.
type fakeUserRepo struct {
	users  map[uint]*models.User
	order  []uint
	nextID uint
	listFn func(ctx context.Context, q repositories.ListQuery) ([]*models.User, int64, error)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	r.users[user.ID] = &stored
	r.order = append(r.order, user.ID)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, id := range r.order {
		if u, ok := r.users[id]; ok && u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, q repositories.ListQuery) ([]*models.User, int64, error) {
	if r.listFn != nil {
		return r.listFn(ctx, q)
	}
	var out []*models.User
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ListByManagerIDs(_ context.Context, managerIDs []uint) ([]*models.User, error) {
	want := make(map[uint]bool, len(managerIDs))
	for _, id := range managerIDs {
		want[id] = true
	}
	var out []*models.User
	for _, id := range r.order {
		u, ok := r.users[id]
		if !ok || u.ManagerID == nil || !want[*u.ManagerID] {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ClearManager(_ context.Context, managerID uint) error {
	for _, u := range r.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			u.ManagerID = nil
		}
	}
	return nil
}

// fakeRoleRepo serves the seeded role set
type fakeRoleRepo struct {
	roles map[uint]*models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[uint]*models.Role{
		models.RoleAdmin:   {ID: models.RoleAdmin, Name: "Admin"},
		models.RoleManager: {ID: models.RoleManager, Name: "Manager"},
		models.RoleStaff:   {ID: models.RoleStaff, Name: "Staff"},
	}}
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id uint) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *role
	return &out, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]*models.Role, error) {
	out := make([]*models.Role, 0, len(r.roles))
	for id := uint(1); id <= uint(len(r.roles)); id++ {
		if role, ok := r.roles[id]; ok {
			copied := *role
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeTokenRepo is an in-memory RefreshTokenRepository
type fakeTokenRepo struct {
	rows   []*models.RefreshToken
	nextID uint
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{nextID: 1}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	stored := *token
	r.rows = append(r.rows, &stored)
	return nil
}

func (r *fakeTokenRepo) GetActiveByHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, row := range r.rows {
		if row.TokenHash == tokenHash && row.RevokedAt == nil {
			out := *row
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) (int64, error) {
	now := time.Now()
	var affected int64
	for _, row := range r.rows {
		if row.TokenHash == tokenHash && row.RevokedAt == nil {
			row.RevokedAt = &now
			affected++
		}
	}
	return affected, nil
}

func (r *fakeTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, row := range r.rows {
		if row.UserID == userID && row.RevokedAt == nil {
			row.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(_ context.Context, userID uint) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserID != userID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

func (r *fakeTokenRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.ExpiresAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

func (r *fakeTokenRepo) CountActiveByUserID(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.UserID == userID && row.IsActive() {
			count++
		}
	}
	return count, nil
}
