package services

import (
	"testing"

	"codeclub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSubmitStartsPending(t *testing.T) {
	svc := NewPortfolioService(newTestDB(t))

	portfolio, err := svc.Submit(1, PortfolioInput{Title: "My project", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.PortfolioPending, portfolio.Status)

	mine, err := svc.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestPortfolioApprovalAwardsExternalBadge(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)
	badges := NewBadgeService(db)

	badge, err := badges.CreateExternalBadge(BadgeInput{Title: "Maker"})
	require.NoError(t, err)
	portfolio, err := svc.Submit(5, PortfolioInput{Title: "My project"})
	require.NoError(t, err)

	reviewed, err := svc.Review(portfolio.ID, ReviewInput{
		Status:          models.PortfolioApproved,
		Feedback:        "well done",
		ExternalBadgeID: &badge.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PortfolioApproved, reviewed.Status)

	var count int64
	db.Model(&models.UserExternalBadge{}).
		Where("user_id = ? AND external_badge_id = ?", uint(5), badge.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)

	// awarding again stays a single pairing
	require.NoError(t, badges.AwardExternalBadge(5, badge.ID))
	db.Model(&models.UserExternalBadge{}).
		Where("user_id = ? AND external_badge_id = ?", uint(5), badge.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPortfolioRejectionKeepsBadgeOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewPortfolioService(db)
	badges := NewBadgeService(db)

	badge, err := badges.CreateExternalBadge(BadgeInput{Title: "Maker"})
	require.NoError(t, err)
	portfolio, err := svc.Submit(5, PortfolioInput{Title: "My project"})
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.Review(portfolio.ID, ReviewInput{
		Status:          models.PortfolioRejected,
		ExternalBadgeID: &badge.ID,
	})
	assert.ErrorAs(t, err, &verr)

	reviewed, err := svc.Review(portfolio.ID, ReviewInput{
		Status:   models.PortfolioRejected,
		Feedback: "needs work",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PortfolioRejected, reviewed.Status)
	assert.Equal(t, "needs work", reviewed.Feedback)
}

func TestPortfolioReviewValidation(t *testing.T) {
	svc := NewPortfolioService(newTestDB(t))

	var verr *ValidationError
	_, err := svc.Review(1, ReviewInput{Status: "maybe"})
	assert.ErrorAs(t, err, &verr)

	var nferr *NotFoundError
	_, err = svc.Review(999, ReviewInput{Status: models.PortfolioApproved})
	assert.ErrorAs(t, err, &nferr)
}
