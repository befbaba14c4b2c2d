package repository

import (
	"context"

	"gorm.io/gorm"

	"bouncer/internal/model"
)

// OutcomeRepository persists per-profile batch outcomes.
type OutcomeRepository interface {
	CreateBatch(ctx context.Context, outcomes []model.ScoringOutcome) error
	ListRecent(ctx context.Context, limit int) ([]model.ScoringOutcome, error)
}

type outcomeRepository struct {
	db *gorm.DB
}

// NewOutcomeRepository builds a GORM-backed outcome repository.
func NewOutcomeRepository(db *gorm.DB) OutcomeRepository {
	return &outcomeRepository{db: db}
}

func (r *outcomeRepository) CreateBatch(ctx context.Context, outcomes []model.ScoringOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&outcomes).Error
}

func (r *outcomeRepository) ListRecent(ctx context.Context, limit int) ([]model.ScoringOutcome, error) {
	if limit <= 0 {
		limit = 100
	}
	var outcomes []model.ScoringOutcome
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&outcomes).Error; err != nil {
		return nil, err
	}
	return outcomes, nil
}
