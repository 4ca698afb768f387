package services

import (
	"errors"

	"codeclub/backend/models"

	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

type BadgeInput struct {
	Title       string `json:"title" validate:"required"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
}

func (s *BadgeService) CreateBadge(in BadgeInput) (*models.Badge, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}
	badge := models.Badge{Title: in.Title, IconURL: in.IconURL}
	if err := s.DB.Create(&badge).Error; err != nil {
		return nil, NewPersistenceError("create badge", err)
	}
	return &badge, nil
}

func (s *BadgeService) ListBadges() ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.DB.Find(&badges).Error; err != nil {
		return nil, NewPersistenceError("list badges", err)
	}
	return badges, nil
}

// DeleteBadge refuses to delete a badge still referenced by a course; the
// reference must be cleared first.
func (s *BadgeService) DeleteBadge(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &models.Badge{}, "badge", id); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Course{}).Where("badge_id = ?", id).Count(&count).Error; err != nil {
			return NewPersistenceError("check badge usage", err)
		}
		if count > 0 {
			return NewConflictError("badge is assigned to a course")
		}
		if err := tx.Where("badge_id = ?", id).Delete(&models.UserBadge{}).Error; err != nil {
			return NewPersistenceError("delete badge awards", err)
		}
		if err := tx.Delete(&models.Badge{}, id).Error; err != nil {
			return NewPersistenceError("delete badge", err)
		}
		return nil
	})
}

func (s *BadgeService) CreateExternalBadge(in BadgeInput) (*models.ExternalBadge, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}
	badge := models.ExternalBadge{Title: in.Title, IconURL: in.IconURL, Description: in.Description}
	if err := s.DB.Create(&badge).Error; err != nil {
		return nil, NewPersistenceError("create external badge", err)
	}
	return &badge, nil
}

func (s *BadgeService) ListExternalBadges() ([]models.ExternalBadge, error) {
	var badges []models.ExternalBadge
	if err := s.DB.Find(&badges).Error; err != nil {
		return nil, NewPersistenceError("list external badges", err)
	}
	return badges, nil
}

// AwardExternalBadge links a user to an external badge. Awarding twice is a
// no-op.
func (s *BadgeService) AwardExternalBadge(userID, badgeID uint) error {
	return awardExternalBadge(s.DB, userID, badgeID)
}

func awardExternalBadge(tx *gorm.DB, userID, badgeID uint) error {
	if err := requireExists(tx, &models.ExternalBadge{}, "external badge", badgeID); err != nil {
		return err
	}
	var existing models.UserExternalBadge
	err := tx.Where("user_id = ? AND external_badge_id = ?", userID, badgeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return NewPersistenceError("check award", err)
	}
	award := models.UserExternalBadge{UserID: userID, ExternalBadgeID: badgeID}
	if err := tx.Create(&award).Error; err != nil {
		return NewPersistenceError("award external badge", err)
	}
	return nil
}

func (s *BadgeService) UserBadges(userID uint) ([]models.Badge, []models.ExternalBadge, error) {
	var badges []models.Badge
	err := s.DB.
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ? AND user_badges.deleted_at IS NULL", userID).
		Find(&badges).Error
	if err != nil {
		return nil, nil, NewPersistenceError("list user badges", err)
	}

	var external []models.ExternalBadge
	err = s.DB.
		Joins("JOIN user_external_badges ON user_external_badges.external_badge_id = external_badges.id").
		Where("user_external_badges.user_id = ? AND user_external_badges.deleted_at IS NULL", userID).
		Find(&external).Error
	if err != nil {
		return nil, nil, NewPersistenceError("list user external badges", err)
	}
	return badges, external, nil
}
