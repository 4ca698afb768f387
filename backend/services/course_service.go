package services

import (
	"errors"

	"codeclub/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// byIndex orders siblings by their position column, quoted per dialect.
func byIndex(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "index"}})
}

type CourseService struct {
	DB *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{DB: db}
}

type CourseInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Level       string   `json:"level"`
	Duration    string   `json:"duration"`
	IsPublished bool     `json:"isPublished"`
	BadgeID     *uint    `json:"badgeId"`
	Tags        []string `json:"tags"`
}

type ReorderPair struct {
	ID    uint `json:"id"`
	Index int  `json:"index"`
}

func (s *CourseService) CreateCourse(in CourseInput) (*models.Course, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	course := models.Course{
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Duration:    in.Duration,
		IsPublished: in.IsPublished,
		BadgeID:     in.BadgeID,
	}
	for i, tag := range in.Tags {
		course.Tags = append(course.Tags, models.CourseTag{Name: tag, Index: i})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.BadgeID != nil {
			if err := checkBadgeAvailable(tx, *in.BadgeID, 0); err != nil {
				return err
			}
		}
		if err := tx.Create(&course).Error; err != nil {
			return NewPersistenceError("create course", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) UpdateCourse(id uint, in CourseInput) (*models.Course, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	var course models.Course
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&course, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("course", id)
			}
			return NewPersistenceError("load course", err)
		}
		if in.BadgeID != nil {
			if err := checkBadgeAvailable(tx, *in.BadgeID, id); err != nil {
				return err
			}
		}

		course.Title = in.Title
		course.Description = in.Description
		course.Level = in.Level
		course.Duration = in.Duration
		course.IsPublished = in.IsPublished
		course.BadgeID = in.BadgeID
		if err := tx.Save(&course).Error; err != nil {
			return NewPersistenceError("update course", err)
		}

		if in.Tags != nil {
			if err := tx.Where("course_id = ?", id).Delete(&models.CourseTag{}).Error; err != nil {
				return NewPersistenceError("replace tags", err)
			}
			for i, tag := range in.Tags {
				t := models.CourseTag{CourseID: id, Name: tag, Index: i}
				if err := tx.Create(&t).Error; err != nil {
					return NewPersistenceError("replace tags", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) GetCourse(id uint) (*models.Course, error) {
	var course models.Course
	err := s.DB.
		Preload("Tags", byIndex).
		Preload("Lessons", byIndex).
		Preload("Lessons.Chapters", byIndex).
		Preload("Lessons.Chapters.Elements", byIndex).
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("course", id)
		}
		return nil, NewPersistenceError("load course", err)
	}
	return &course, nil
}

func (s *CourseService) ListCourses(publishedOnly bool) ([]models.Course, error) {
	query := s.DB.Preload("Tags", byIndex)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, NewPersistenceError("list courses", err)
	}
	return courses, nil
}

// DeleteCourse removes the course and everything it owns in one transaction.
func (s *CourseService) DeleteCourse(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("course", id)
			}
			return NewPersistenceError("load course", err)
		}

		var lessonIDs []uint
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return NewPersistenceError("load lessons", err)
		}
		if err := deleteLessonsTree(tx, lessonIDs); err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseTag{}).Error; err != nil {
			return NewPersistenceError("delete tags", err)
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.UserLearningCourse{}).Error; err != nil {
			return NewPersistenceError("delete course progress", err)
		}
		if err := tx.Delete(&course).Error; err != nil {
			return NewPersistenceError("delete course", err)
		}
		return nil
	})
}

type LessonInput struct {
	Title string `json:"title" validate:"required"`
	Index *int   `json:"index"`
}

func (s *CourseService) CreateLesson(courseID uint, in LessonInput) (*models.Lesson, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	var lesson models.Lesson
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Course{}, "course", courseID); err != nil {
			return err
		}
		index, err := resolveIndex(tx, in.Index, &models.Lesson{}, "course_id", courseID)
		if err != nil {
			return err
		}
		lesson = models.Lesson{CourseID: courseID, Title: in.Title, Index: index}
		if err := tx.Create(&lesson).Error; err != nil {
			return NewPersistenceError("create lesson", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *CourseService) CreateChapter(lessonID uint, in LessonInput) (*models.Chapter, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	var chapter models.Chapter
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Lesson{}, "lesson", lessonID); err != nil {
			return err
		}
		index, err := resolveIndex(tx, in.Index, &models.Chapter{}, "lesson_id", lessonID)
		if err != nil {
			return err
		}
		chapter = models.Chapter{LessonID: lessonID, Title: in.Title, Index: index}
		if err := tx.Create(&chapter).Error; err != nil {
			return NewPersistenceError("create chapter", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

type ElementInput struct {
	Type       string `json:"type" validate:"required"`
	Index      *int   `json:"index"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl"`
	QuizFormID *uint  `json:"quizFormId"`
}

func (s *CourseService) CreateElement(chapterID uint, in ElementInput) (*models.ChapterElement, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	switch in.Type {
	case models.ElementHeader, models.ElementText, models.ElementCode, models.ElementImage:
		if in.QuizFormID != nil {
			return nil, NewValidationError("only form elements may reference a quiz")
		}
	case models.ElementForm:
		if in.QuizFormID == nil {
			return nil, NewValidationError("form elements must reference a quiz")
		}
	default:
		return nil, NewValidationError("unknown element type: " + in.Type)
	}

	var element models.ChapterElement
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Chapter{}, "chapter", chapterID); err != nil {
			return err
		}
		if in.QuizFormID != nil {
			if err := requireExists(tx, &models.QuizForm{}, "quiz", *in.QuizFormID); err != nil {
				return err
			}
		}
		index, err := resolveIndex(tx, in.Index, &models.ChapterElement{}, "chapter_id", chapterID)
		if err != nil {
			return err
		}
		element = models.ChapterElement{
			ChapterID:  chapterID,
			Type:       in.Type,
			Index:      index,
			Content:    in.Content,
			ImageURL:   in.ImageURL,
			QuizFormID: in.QuizFormID,
		}
		if err := tx.Create(&element).Error; err != nil {
			return NewPersistenceError("create element", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &element, nil
}

// ReorderLessons applies the supplied index assignments to the course's
// lessons as one atomic batch. Pairs naming an id that is not a lesson of
// this course are skipped; lessons not mentioned keep their index.
func (s *CourseService) ReorderLessons(courseID uint, pairs []ReorderPair) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Course{}, "course", courseID); err != nil {
			return err
		}
		return reorderSiblings(tx, &models.Lesson{}, "course_id", courseID, pairs)
	})
}

func (s *CourseService) ReorderChapters(lessonID uint, pairs []ReorderPair) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Lesson{}, "lesson", lessonID); err != nil {
			return err
		}
		return reorderSiblings(tx, &models.Chapter{}, "lesson_id", lessonID, pairs)
	})
}

func (s *CourseService) ReorderElements(chapterID uint, pairs []ReorderPair) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Chapter{}, "chapter", chapterID); err != nil {
			return err
		}
		return reorderSiblings(tx, &models.ChapterElement{}, "chapter_id", chapterID, pairs)
	})
}

func (s *CourseService) DeleteLesson(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Lesson{}, "lesson", id); err != nil {
			return err
		}
		return deleteLessonsTree(tx, []uint{id})
	})
}

func (s *CourseService) DeleteChapter(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Chapter{}, "chapter", id); err != nil {
			return err
		}
		return deleteChaptersTree(tx, []uint{id})
	})
}

func (s *CourseService) DeleteElement(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.ChapterElement{}, "element", id); err != nil {
			return err
		}
		if err := tx.Delete(&models.ChapterElement{}, id).Error; err != nil {
			return NewPersistenceError("delete element", err)
		}
		return nil
	})
}

// ExistsWithBadge reports whether any course other than excludeCourseID
// already references the badge.
func (s *CourseService) ExistsWithBadge(badgeID, excludeCourseID uint) (bool, error) {
	var count int64
	query := s.DB.Model(&models.Course{}).Where("badge_id = ?", badgeID)
	if excludeCourseID != 0 {
		query = query.Where("id <> ?", excludeCourseID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, NewPersistenceError("check badge usage", err)
	}
	return count > 0, nil
}

// checkBadgeAvailable rejects assigning a badge already held by another
// course, or one whose icon asset is shared with another course's badge.
func checkBadgeAvailable(tx *gorm.DB, badgeID, excludeCourseID uint) error {
	var badge models.Badge
	if err := tx.First(&badge, badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("badge", badgeID)
		}
		return NewPersistenceError("load badge", err)
	}

	var count int64
	query := tx.Model(&models.Course{}).Where("badge_id = ?", badgeID)
	if excludeCourseID != 0 {
		query = query.Where("id <> ?", excludeCourseID)
	}
	if err := query.Count(&count).Error; err != nil {
		return NewPersistenceError("check badge usage", err)
	}
	if count > 0 {
		return NewConflictError("badge is already assigned to another course")
	}

	if badge.IconURL != "" {
		query = tx.Model(&models.Course{}).
			Joins("JOIN badges ON badges.id = courses.badge_id").
			Where("badges.icon_url = ? AND badges.id <> ?", badge.IconURL, badgeID)
		if excludeCourseID != 0 {
			query = query.Where("courses.id <> ?", excludeCourseID)
		}
		if err := query.Count(&count).Error; err != nil {
			return NewPersistenceError("check badge icon usage", err)
		}
		if count > 0 {
			return NewConflictError("badge icon is already used by another course's badge")
		}
	}
	return nil
}

func requireExists(tx *gorm.DB, model interface{}, resource string, id uint) error {
	err := tx.First(model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError(resource, id)
		}
		return NewPersistenceError("load "+resource, err)
	}
	return nil
}

// resolveIndex returns the explicit index when given, otherwise one past the
// highest sibling index.
func resolveIndex(tx *gorm.DB, explicit *int, model interface{}, parentColumn string, parentID uint) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	rows, err := siblingIndexes(tx, model, parentColumn, parentID)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, idx := range rows {
		if idx >= next {
			next = idx + 1
		}
	}
	return next, nil
}

type indexedRow struct {
	ID    uint
	Index int
}

func siblingIndexes(tx *gorm.DB, model interface{}, parentColumn string, parentID uint) ([]int, error) {
	rows, err := siblingRows(tx, model, parentColumn, parentID)
	if err != nil {
		return nil, err
	}
	indexes := make([]int, 0, len(rows))
	for _, r := range rows {
		indexes = append(indexes, r.Index)
	}
	return indexes, nil
}

func siblingRows(tx *gorm.DB, model interface{}, parentColumn string, parentID uint) ([]indexedRow, error) {
	var rows []indexedRow
	err := tx.Model(model).
		Select(`id, "index"`).
		Where(parentColumn+" = ?", parentID).
		Scan(&rows).Error
	if err != nil {
		return nil, NewPersistenceError("load siblings", err)
	}
	return rows, nil
}

func reorderSiblings(tx *gorm.DB, model interface{}, parentColumn string, parentID uint, pairs []ReorderPair) error {
	rows, err := siblingRows(tx, model, parentColumn, parentID)
	if err != nil {
		return err
	}
	siblings := make(map[uint]struct{}, len(rows))
	for _, r := range rows {
		siblings[r.ID] = struct{}{}
	}

	for _, pair := range pairs {
		if _, ok := siblings[pair.ID]; !ok {
			continue // not a child of this parent
		}
		err := tx.Model(model).Where("id = ?", pair.ID).Update("index", pair.Index).Error
		if err != nil {
			return NewPersistenceError("update sibling index", err)
		}
	}
	return nil
}

func deleteLessonsTree(tx *gorm.DB, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	var chapterIDs []uint
	if err := tx.Model(&models.Chapter{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &chapterIDs).Error; err != nil {
		return NewPersistenceError("load chapters", err)
	}
	if err := deleteChaptersTree(tx, chapterIDs); err != nil {
		return err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.UserLesson{}).Error; err != nil {
		return NewPersistenceError("delete lesson progress", err)
	}
	if err := tx.Where("id IN ?", lessonIDs).Delete(&models.Lesson{}).Error; err != nil {
		return NewPersistenceError("delete lessons", err)
	}
	return nil
}

func deleteChaptersTree(tx *gorm.DB, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.ChapterElement{}).Error; err != nil {
		return NewPersistenceError("delete elements", err)
	}
	if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.UserChapter{}).Error; err != nil {
		return NewPersistenceError("delete chapter progress", err)
	}
	if err := tx.Where("id IN ?", chapterIDs).Delete(&models.Chapter{}).Error; err != nil {
		return NewPersistenceError("delete chapters", err)
	}
	return nil
}
