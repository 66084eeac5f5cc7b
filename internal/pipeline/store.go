package pipeline

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
)

// GormDetailsStore is the production DetailsStore, backed by the shared
// *gorm.DB. Fetch is ownership-checked: a record belonging to another user
// behaves like a missing record.
type GormDetailsStore struct {
	DB *gorm.DB
}

func (s *GormDetailsStore) Fetch(ctx context.Context, id, userID uuid.UUID) (*models.JobDetails, error) {
	var det models.JobDetails
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&det).Error; err != nil {
		return nil, err
	}
	return &det, nil
}

func (s *GormDetailsStore) SaveAnalyzed(ctx context.Context, id uuid.UUID, analyzed []byte) error {
	return s.DB.WithContext(ctx).
		Model(&models.JobDetails{}).
		Where("id = ?", id).
		Update("analyzed", datatypes.JSON(analyzed)).Error
}
