package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Level       string // beginner, intermediate, advanced
	Duration    string
	IsPublished bool  `gorm:"default:false"`
	BadgeID     *uint // at most one course per badge, enforced in the service layer
	Tags        []CourseTag
	Lessons     []Lesson
}

type CourseTag struct {
	gorm.Model
	CourseID uint `gorm:"not null;index"`
	Name     string
	Index    int
}

type Lesson struct {
	gorm.Model
	CourseID uint `gorm:"not null;index"`
	Title    string
	Index    int
	Chapters []Chapter
}

type Chapter struct {
	gorm.Model
	LessonID uint `gorm:"not null;index"`
	Title    string
	Index    int
	Elements []ChapterElement
}

// Chapter element types. The set is closed; anything else is rejected on create.
const (
	ElementHeader = "header"
	ElementText   = "text"
	ElementCode   = "code"
	ElementImage  = "image"
	ElementForm   = "form"
)

type ChapterElement struct {
	gorm.Model
	ChapterID  uint   `gorm:"not null;index"`
	Type       string `gorm:"not null"`
	Index      int
	Content    string // header/text/code payload
	ImageURL   string // image payload
	QuizFormID *uint  // set iff Type == form
}
