package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	FirstName    string
	LastName     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`

	RefreshToken       string `json:"-"`
	RefreshTokenExpiry time.Time

	IsActive bool `gorm:"default:true"`
	IsLocked bool `gorm:"default:false"`

	Roles []Role `gorm:"many2many:user_roles"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"` // Admin, User
}

// RoleNames flattens the loaded role set for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
