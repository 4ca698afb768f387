package models

import "gorm.io/gorm"

// Portfolio moderation states.
const (
	PortfolioPending  = "pending"
	PortfolioApproved = "approved"
	PortfolioRejected = "rejected"
)

type Portfolio struct {
	gorm.Model
	UserID          uint   `gorm:"not null;index"`
	Title           string `gorm:"not null"`
	URL             string
	Description     string
	Status          string `gorm:"default:pending"`
	Feedback        string
	ExternalBadgeID *uint // linked on approval, optional
}
