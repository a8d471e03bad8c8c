package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents the roles lookup table.
// Seeded once at startup (Admin=1, Manager=2, Staff=3), never mutated after.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ids as seeded.
const (
	RoleAdmin   uint = 1
	RoleManager uint = 2
	RoleStaff   uint = 3
)

// User represents the users table. ManagerID is a nullable self-reference;
// deleting a manager sets the reports' ManagerID to NULL instead of cascading.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       uint      `gorm:"index;not null" json:"role_id"`
	ManagerID    *uint     `gorm:"index" json:"manager_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	AvatarURL    *string   `gorm:"size:255" json:"avatar_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Role    *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Manager *User  `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"-"`
	Reports []User `gorm:"foreignKey:ManagerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse is the public projection of a user. The password hash never
// leaves the persistence layer.
type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl"`
	RoleID    uint      `json:"roleId"`
	RoleName  string    `json:"roleName,omitempty"`
	IsActive  bool      `json:"isActive"`
	ManagerID *uint     `json:"managerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		RoleID:    u.RoleID,
		IsActive:  u.IsActive,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
	if u.Role != nil {
		resp.RoleName = u.Role.Name
	}
	return resp
}

// RefreshToken represents the refresh_tokens table. Only the SHA-256 digest of
// the issued token is stored; revoked rows are kept for audit and filtered out
// of active lookups.
type RefreshToken struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	TokenHash   string     `gorm:"size:160;not null;index" json:"-"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt   *time.Time `gorm:"index" json:"revoked_at"`
	CreatedByIP *string    `gorm:"size:64" json:"created_by_ip"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsActive reports whether the token can still be exchanged for access tokens.
func (rt *RefreshToken) IsActive() bool {
	return !rt.IsRevoked() && !rt.IsExpired()
}

// AutoMigrate creates or updates the schema for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&RefreshToken{},
	)
}
