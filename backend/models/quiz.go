package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizForm struct {
	gorm.Model
	Title     string `gorm:"not null"`
	Questions []QuizQuestion
}

type QuizQuestion struct {
	gorm.Model
	QuizFormID    uint   `gorm:"not null;index"`
	Question      string `gorm:"not null"`
	Options       string // JSON array of exactly four answer options
	CorrectAnswer int    // 0..3
	Index         int
}

type QuizSubmission struct {
	gorm.Model
	UserID      uint `gorm:"not null;index"`
	QuizFormID  uint `gorm:"not null;index"`
	Score       int
	Total       int
	SubmittedAt time.Time
}
