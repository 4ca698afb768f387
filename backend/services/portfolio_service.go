package services

import (
	"errors"

	"codeclub/backend/models"

	"gorm.io/gorm"
)

type PortfolioService struct {
	DB *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{DB: db}
}

type PortfolioInput struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

func (s *PortfolioService) Submit(userID uint, in PortfolioInput) (*models.Portfolio, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}
	portfolio := models.Portfolio{
		UserID:      userID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Status:      models.PortfolioPending,
	}
	if err := s.DB.Create(&portfolio).Error; err != nil {
		return nil, NewPersistenceError("create portfolio", err)
	}
	return &portfolio, nil
}

func (s *PortfolioService) ListByUser(userID uint) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := s.DB.Where("user_id = ?", userID).Find(&portfolios).Error; err != nil {
		return nil, NewPersistenceError("list portfolios", err)
	}
	return portfolios, nil
}

func (s *PortfolioService) ListPending() ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	err := s.DB.Where("status = ?", models.PortfolioPending).Find(&portfolios).Error
	if err != nil {
		return nil, NewPersistenceError("list pending portfolios", err)
	}
	return portfolios, nil
}

type ReviewInput struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected"`
	Feedback        string `json:"feedback"`
	ExternalBadgeID *uint  `json:"externalBadgeId"`
}

// Review settles a pending submission. Approval may link an external badge,
// which is awarded to the submitting user in the same transaction.
func (s *PortfolioService) Review(id uint, in ReviewInput) (*models.Portfolio, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}
	if in.Status == models.PortfolioRejected && in.ExternalBadgeID != nil {
		return nil, NewValidationError("a rejected portfolio cannot carry a badge")
	}

	var portfolio models.Portfolio
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&portfolio, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("portfolio", id)
			}
			return NewPersistenceError("load portfolio", err)
		}

		portfolio.Status = in.Status
		portfolio.Feedback = in.Feedback
		portfolio.ExternalBadgeID = in.ExternalBadgeID
		if err := tx.Save(&portfolio).Error; err != nil {
			return NewPersistenceError("update portfolio", err)
		}

		if in.Status == models.PortfolioApproved && in.ExternalBadgeID != nil {
			return awardExternalBadge(tx, portfolio.UserID, *in.ExternalBadgeID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}
