package services

import (
	"encoding/json"
	"errors"
	"time"

	"codeclub/backend/models"

	"gorm.io/gorm"
)

const quizOptionCount = 4

type QuizService struct {
	DB *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{DB: db}
}

type QuizQuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type QuizInput struct {
	Title     string              `json:"title" validate:"required"`
	Questions []QuizQuestionInput `json:"questions"`
}

func (s *QuizService) CreateQuiz(in QuizInput) (*models.QuizForm, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	form := models.QuizForm{Title: in.Title}
	for i, q := range in.Questions {
		if len(q.Options) != quizOptionCount {
			return nil, NewValidationError("each question needs exactly four answer options")
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= quizOptionCount {
			return nil, NewValidationError("correct answer index must be between 0 and 3")
		}
		options, err := json.Marshal(q.Options)
		if err != nil {
			return nil, NewValidationError("invalid answer options")
		}
		form.Questions = append(form.Questions, models.QuizQuestion{
			Question:      q.Question,
			Options:       string(options),
			CorrectAnswer: q.CorrectAnswer,
			Index:         i,
		})
	}

	if err := s.DB.Create(&form).Error; err != nil {
		return nil, NewPersistenceError("create quiz", err)
	}
	return &form, nil
}

func (s *QuizService) GetQuiz(id uint) (*models.QuizForm, error) {
	var form models.QuizForm
	err := s.DB.Preload("Questions", byIndex).First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("quiz", id)
		}
		return nil, NewPersistenceError("load quiz", err)
	}
	return &form, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.QuizForm{}, "quiz", id); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.ChapterElement{}).Where("quiz_form_id = ?", id).Count(&count).Error; err != nil {
			return NewPersistenceError("check quiz usage", err)
		}
		if count > 0 {
			return NewConflictError("quiz is referenced by a chapter element")
		}
		if err := tx.Where("quiz_form_id = ?", id).Delete(&models.QuizQuestion{}).Error; err != nil {
			return NewPersistenceError("delete questions", err)
		}
		if err := tx.Delete(&models.QuizForm{}, id).Error; err != nil {
			return NewPersistenceError("delete quiz", err)
		}
		return nil
	})
}

// Score grades a submission against the quiz's answer key. An answer counts
// only on an exact index match; out-of-range or missing answers are wrong,
// not an input error. The attempt is recorded regardless of the result.
func (s *QuizService) Score(userID, quizID uint, answers []int) (*models.QuizSubmission, error) {
	form, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	score := 0
	for i, q := range form.Questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.CorrectAnswer {
			score++
		}
	}

	submission := models.QuizSubmission{
		UserID:      userID,
		QuizFormID:  quizID,
		Score:       score,
		Total:       len(form.Questions),
		SubmittedAt: time.Now(),
	}
	if err := s.DB.Create(&submission).Error; err != nil {
		return nil, NewPersistenceError("record submission", err)
	}
	return &submission, nil
}

func (s *QuizService) ListSubmissions(userID, quizID uint) ([]models.QuizSubmission, error) {
	var submissions []models.QuizSubmission
	err := s.DB.Where("user_id = ? AND quiz_form_id = ?", userID, quizID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, NewPersistenceError("list submissions", err)
	}
	return submissions, nil
}
