package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bouncer/internal/model"
)

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Upsert(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	// ListNeedingScore returns profiles carrying the needs-scoring sentinel
	// (risk_level NULL or 0).
	ListNeedingScore(ctx context.Context) ([]model.Profile, error)
	// ListAboveThreshold returns profiles with risk_level strictly greater
	// than threshold, highest risk first.
	ListAboveThreshold(ctx context.Context, threshold int) ([]model.Profile, error)
	// UpdateRiskAssessment writes the scoring result for one profile.
	UpdateRiskAssessment(ctx context.Context, id uuid.UUID, riskLevel int, reasoning, raw datatypes.JSON) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Upsert inserts or overwrites by id, matching the store's onConflict(id)
// behavior used by the onboarding flow.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) ListNeedingScore(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).
		Where("risk_level IS NULL OR risk_level = 0").
		Order("created_at").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) ListAboveThreshold(ctx context.Context, threshold int) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).
		Where("risk_level > ?", threshold).
		Order("risk_level DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) UpdateRiskAssessment(ctx context.Context, id uuid.UUID, riskLevel int, reasoning, raw datatypes.JSON) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"risk_level":        riskLevel,
			"reasoning_summary": reasoning,
			"raw_json":          raw,
		}).Error
}
