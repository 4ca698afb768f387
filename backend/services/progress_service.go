package services

import (
	"errors"
	"time"

	"codeclub/backend/models"

	"gorm.io/gorm"
)

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

func (s *ProgressService) StartCourse(userID, courseID uint) (*models.UserLearningCourse, error) {
	if err := requireExists(s.DB, &models.Course{}, "course", courseID); err != nil {
		return nil, err
	}
	progress := models.UserLearningCourse{UserID: userID, CourseID: courseID}
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Attrs(models.UserLearningCourse{StartedAt: time.Now()}).
		FirstOrCreate(&progress).Error
	if err != nil {
		return nil, NewPersistenceError("start course", err)
	}
	return &progress, nil
}

func (s *ProgressService) CompleteChapter(userID, chapterID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Chapter{}, "chapter", chapterID); err != nil {
			return err
		}
		return markComplete(tx, &models.UserChapter{UserID: userID, ChapterID: chapterID},
			"user_id = ? AND chapter_id = ?", userID, chapterID)
	})
}

// CompleteLesson marks the lesson done. When it is the course's last open
// lesson the course itself is completed and its badge, if any, awarded once.
func (s *ProgressService) CompleteLesson(userID, lessonID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("lesson", lessonID)
			}
			return NewPersistenceError("load lesson", err)
		}

		err := markComplete(tx, &models.UserLesson{UserID: userID, LessonID: lessonID},
			"user_id = ? AND lesson_id = ?", userID, lessonID)
		if err != nil {
			return err
		}
		return s.completeCourseIfDone(tx, userID, lesson.CourseID)
	})
}

func (s *ProgressService) completeCourseIfDone(tx *gorm.DB, userID, courseID uint) error {
	var lessonIDs []uint
	if err := tx.Model(&models.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
		return NewPersistenceError("load lessons", err)
	}
	if len(lessonIDs) == 0 {
		return nil
	}

	var done int64
	err := tx.Model(&models.UserLesson{}).
		Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, lessonIDs).
		Count(&done).Error
	if err != nil {
		return NewPersistenceError("count completed lessons", err)
	}
	if done < int64(len(lessonIDs)) {
		return nil
	}

	now := time.Now()
	progress := models.UserLearningCourse{UserID: userID, CourseID: courseID, StartedAt: now}
	err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).FirstOrCreate(&progress).Error
	if err != nil {
		return NewPersistenceError("load course progress", err)
	}
	if progress.CompletedAt == nil {
		if err := tx.Model(&progress).Update("completed_at", now).Error; err != nil {
			return NewPersistenceError("complete course", err)
		}
	}

	var course models.Course
	if err := tx.First(&course, courseID).Error; err != nil {
		return NewPersistenceError("load course", err)
	}
	if course.BadgeID == nil {
		return nil
	}

	var existing models.UserBadge
	err = tx.Where("user_id = ? AND badge_id = ?", userID, *course.BadgeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return NewPersistenceError("check badge award", err)
	}
	award := models.UserBadge{UserID: userID, BadgeID: *course.BadgeID}
	if err := tx.Create(&award).Error; err != nil {
		return NewPersistenceError("award badge", err)
	}
	return nil
}

type CourseProgress struct {
	CourseID         uint       `json:"courseId"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	LessonsTotal     int        `json:"lessonsTotal"`
	LessonsCompleted int        `json:"lessonsCompleted"`
}

func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	var record models.UserLearningCourse
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("course progress", courseID)
		}
		return nil, NewPersistenceError("load course progress", err)
	}

	var lessonIDs []uint
	if err := s.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).Pluck("id", &lessonIDs).Error; err != nil {
		return nil, NewPersistenceError("load lessons", err)
	}
	var done int64
	if len(lessonIDs) > 0 {
		err = s.DB.Model(&models.UserLesson{}).
			Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, lessonIDs).
			Count(&done).Error
		if err != nil {
			return nil, NewPersistenceError("count completed lessons", err)
		}
	}

	return &CourseProgress{
		CourseID:         courseID,
		StartedAt:        record.StartedAt,
		CompletedAt:      record.CompletedAt,
		LessonsTotal:     len(lessonIDs),
		LessonsCompleted: int(done),
	}, nil
}

func markComplete(tx *gorm.DB, record interface{}, query string, args ...interface{}) error {
	now := time.Now()
	err := tx.Where(query, args...).First(record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return NewPersistenceError("load progress", err)
		}
		if err := tx.Create(record).Error; err != nil {
			return NewPersistenceError("create progress", err)
		}
	}
	if err := tx.Model(record).Update("completed_at", now).Error; err != nil {
		return NewPersistenceError("complete progress", err)
	}
	return nil
}
