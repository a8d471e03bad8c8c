package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/core/domain"
	"github.com/Hllyys/FullStackCase/internal/pkg/pagination"
	"github.com/Hllyys/FullStackCase/internal/pkg/password"
	"github.com/Hllyys/FullStackCase/internal/pkg/tree"

	"gorm.io/gorm"
)

// maxHierarchyDepth bounds every walk over the manager relationship. The
// storage layer does not enforce acyclicity, so traversals must not trust it.
const maxHierarchyDepth = 100

// UserService handles user directory business logic
type UserService struct {
	userRepo         repositories.UserRepository
	roleRepo         repositories.RoleRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// ListUsersInput represents a validated listing request. Depth controls
// manager nesting of the returned page: 0 keeps rows flat,
// tree.DepthUnbounded nests fully.
type ListUsersInput struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
	Depth     int
	Filters   repositories.ListFilters
}

// ListUsersOutput represents one page of users plus pagination metadata
type ListUsersOutput struct {
	Data       []*tree.Node     `json:"data"`
	Pagination *pagination.Meta `json:"pagination"`
}

// CreateUserInput represents admin user creation
type CreateUserInput struct {
	FullName  string
	Email     string
	Password  string
	RoleID    uint
	ManagerID *uint
	IsActive  *bool
	AvatarURL *string
}

// UpdateUserInput represents a partial update. Nil fields are unchanged;
// ManagerID set to 0 clears the manager link.
type UpdateUserInput struct {
	FullName  *string
	Email     *string
	Password  *string
	RoleID    *uint
	IsActive  *bool
	AvatarURL *string
	ManagerID *uint
}

// ListUsers returns a sorted, filtered page of users nested by the manager
// relationship up to the requested depth. Rows whose manager falls outside
// the page act as roots, so a flat page and a nested page carry the same
// users.
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	params := pagination.Normalize(input.Page, input.Size)

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := input.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	users, total, err := s.userRepo.List(ctx, repositories.ListQuery{
		Offset:    params.Offset,
		Limit:     params.Size,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Filters:   input.Filters,
	})
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to list users", err)
	}

	var roots []*models.UserResponse
	children := make(map[uint][]*models.UserResponse)
	if input.Depth == 0 {
		// Flat listing: every row stays top-level.
		for _, u := range users {
			roots = append(roots, u.ToResponse())
		}
	} else {
		inPage := make(map[uint]bool, len(users))
		for _, u := range users {
			inPage[u.ID] = true
		}
		for _, u := range users {
			resp := u.ToResponse()
			if u.ManagerID != nil && inPage[*u.ManagerID] {
				children[*u.ManagerID] = append(children[*u.ManagerID], resp)
			} else {
				roots = append(roots, resp)
			}
		}
	}

	return &ListUsersOutput{
		Data:       tree.Build(roots, children, input.Depth),
		Pagination: pagination.GetMeta(params, total),
	}, nil
}

// GetUser returns one user's public projection
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to load user", err)
	}
	return user.ToResponse(), nil
}

// CreateUser creates a user from the admin panel
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
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

	managerID := input.ManagerID
	if managerID != nil && *managerID == 0 {
		managerID = nil
	}
	if managerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *managerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrManagerNotFound
			}
			return nil, domain.Wrap(domain.KindInternal, "Failed to check manager", err)
		}
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
		AvatarURL:    input.AvatarURL,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to create user", err)
	}

	return user.ToResponse(), nil
}

// UpdateUser applies a partial update, revalidating email uniqueness, the
// role reference, and the manager assignment.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Wrap(domain.KindInternal, "Failed to load user", err)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, domain.Wrap(domain.KindInternal, "Failed to check email", err)
			}
			if exists {
				return nil, domain.ErrEmailInUse
			}
			user.Email = email
		}
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}

	if input.RoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrRoleNotFound
			}
			return nil, domain.Wrap(domain.KindInternal, "Failed to check role", err)
		}
		user.RoleID = *input.RoleID
		user.Role = nil
	}

	if input.Password != nil && *input.Password != "" {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, domain.Wrap(domain.KindInternal, "Failed to hash password", err)
		}
		user.PasswordHash = hashed
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}

	if input.ManagerID != nil {
		if *input.ManagerID == 0 {
			user.ManagerID = nil
		} else {
			if err := s.checkManagerAssignment(ctx, id, *input.ManagerID); err != nil {
				return nil, err
			}
			managerID := *input.ManagerID
			user.ManagerID = &managerID
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to update user", err)
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Failed to reload user", err)
	}
	return updated.ToResponse(), nil
}

// DeleteUser removes a user. Reports of the deleted manager keep existing
// with an absent manager link; the user's refresh tokens are invalidated by
// deletion.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return domain.Wrap(domain.KindInternal, "Failed to load user", err)
	}

	if err := s.userRepo.ClearManager(ctx, id); err != nil {
		return domain.Wrap(domain.KindInternal, "Failed to detach reports", err)
	}
	if err := s.refreshTokenRepo.DeleteByUserID(ctx, id); err != nil {
		return domain.Wrap(domain.KindInternal, "Failed to remove refresh tokens", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return domain.Wrap(domain.KindInternal, "Failed to delete user", err)
	}
	return nil
}

// GetAllReports collects every transitive report of a manager by walking the
// adjacency level by level. The walk is bounded by maxHierarchyDepth and a
// visited set, so cyclic manager data cannot loop it.
func (s *UserService) GetAllReports(ctx context.Context, managerID uint) ([]*models.UserResponse, error) {
	seen := map[uint]bool{managerID: true}
	frontier := []uint{managerID}
	var all []*models.UserResponse

	for level := 0; level < maxHierarchyDepth && len(frontier) > 0; level++ {
		reports, err := s.userRepo.ListByManagerIDs(ctx, frontier)
		if err != nil {
			return nil, domain.Wrap(domain.KindInternal, "Failed to load reports", err)
		}

		frontier = frontier[:0]
		for _, u := range reports {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			all = append(all, u.ToResponse())
			frontier = append(frontier, u.ID)
		}
	}

	return all, nil
}

// checkManagerAssignment validates a manager reassignment: the manager must
// exist, must not be the user itself, and must not sit below the user in the
// hierarchy. The data carries no cycle constraint, so the ancestor chain is
// walked here with a bounded step count.
func (s *UserService) checkManagerAssignment(ctx context.Context, userID, managerID uint) error {
	if managerID == userID {
		return domain.ErrSelfManager
	}

	current := managerID
	for step := 0; step < maxHierarchyDepth; step++ {
		node, err := s.userRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if current == managerID {
					return domain.ErrManagerNotFound
				}
				// A dangling ancestor link ends the chain cleanly.
				return nil
			}
			return domain.Wrap(domain.KindInternal, "Failed to walk manager chain", err)
		}
		if node.ManagerID == nil {
			return nil
		}
		if *node.ManagerID == userID {
			return domain.ErrManagerCycle
		}
		current = *node.ManagerID
	}

	// The existing chain is already longer than any legal hierarchy.
	return domain.ErrManagerCycle
}
