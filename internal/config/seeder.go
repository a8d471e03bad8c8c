package config

import (
	"log"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedRoles seeds the fixed role lookup set. Ids are stable (Admin=1,
// Manager=2, Staff=3) and existing rows are left untouched.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: models.RoleAdmin, Name: "Admin"},
		{ID: models.RoleManager, Name: "Manager"},
		{ID: models.RoleStaff, Name: "Staff"},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("id = ?", role.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&role).Error; err != nil {
					return err
				}
				log.Printf("   Created role: %s", role.Name)
			} else {
				return err
			}
		}
	}

	log.Println("✅ Roles seeded successfully")
	return nil
}
