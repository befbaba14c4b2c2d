package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bouncer/internal/cache"
	"bouncer/internal/model"
	"bouncer/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// ProfileService exposes profile store operations for the UI surfaces.
type ProfileService interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	UpsertProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
}

type profileService struct {
	repo  repository.ProfileRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(repo repository.ProfileRepository, cacheClient *cache.Client) ProfileService {
	return &profileService{repo: repo, cache: cacheClient}
}

func (s *profileService) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, profileCacheKey(profile.ID))
	return profile, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, profileCacheKey(profile.ID))
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var cached model.Profile
	if s.cache.GetJSON(ctx, profileCacheKey(id), &cached) {
		return &cached, nil
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, profileCacheKey(id), profile, profileCacheTTL)
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return s.repo.List(ctx)
}
