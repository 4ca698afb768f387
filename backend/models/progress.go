package models

import (
	"time"

	"gorm.io/gorm"
)

type UserLearningCourse struct {
	gorm.Model
	UserID      uint `gorm:"not null;index"`
	CourseID    uint `gorm:"not null;index"`
	StartedAt   time.Time
	CompletedAt *time.Time
}

type UserLesson struct {
	gorm.Model
	UserID      uint `gorm:"not null;index"`
	LessonID    uint `gorm:"not null;index"`
	CompletedAt *time.Time
}

type UserChapter struct {
	gorm.Model
	UserID      uint `gorm:"not null;index"`
	ChapterID   uint `gorm:"not null;index"`
	CompletedAt *time.Time
}
