package services

import (
	"errors"

	"codeclub/backend/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Roles").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user", id)
		}
		return nil, NewPersistenceError("load user", err)
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Roles").Find(&users).Error; err != nil {
		return nil, NewPersistenceError("list users", err)
	}
	return users, nil
}

func (s *UserService) SetLocked(id uint, locked bool) error {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("user", id)
		}
		return NewPersistenceError("load user", err)
	}
	if err := s.DB.Model(&user).Update("is_locked", locked).Error; err != nil {
		return NewPersistenceError("update user", err)
	}
	return nil
}

func (s *UserService) AssignRole(userID uint, roleName string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Preload("Roles").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("user", userID)
			}
			return NewPersistenceError("load user", err)
		}
		for _, r := range user.Roles {
			if r.Name == roleName {
				return nil
			}
		}
		var role models.Role
		if err := tx.Where(models.Role{Name: roleName}).FirstOrCreate(&role).Error; err != nil {
			return NewPersistenceError("load role", err)
		}
		if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
			return NewPersistenceError("assign role", err)
		}
		return nil
	})
}

// DeleteUser soft-deletes the account together with everything it owns:
// portfolios, quiz submissions, progress records and badge awards.
func (s *UserService) DeleteUser(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("user", id)
			}
			return NewPersistenceError("load user", err)
		}

		owned := []interface{}{
			&models.Portfolio{},
			&models.QuizSubmission{},
			&models.UserLearningCourse{},
			&models.UserLesson{},
			&models.UserChapter{},
			&models.UserBadge{},
			&models.UserExternalBadge{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return NewPersistenceError("delete user data", err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return NewPersistenceError("delete user", err)
		}
		return nil
	})
}
