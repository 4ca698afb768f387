package models

import "gorm.io/gorm"

type Badge struct {
	gorm.Model
	Title   string `gorm:"not null"`
	IconURL string
}

type ExternalBadge struct {
	gorm.Model
	Title       string `gorm:"not null"`
	IconURL     string
	Description string
}

// UserBadge records a course-completion badge award.
type UserBadge struct {
	gorm.Model
	UserID  uint `gorm:"not null;index"`
	BadgeID uint `gorm:"not null;index"`
}

// UserExternalBadge is a bare join; the pairing carries no extra attributes.
type UserExternalBadge struct {
	gorm.Model
	UserID          uint `gorm:"not null;index"`
	ExternalBadgeID uint `gorm:"not null;index"`
}
