package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gorm.io/datatypes"

	"bouncer/internal/cache"
	apperrors "bouncer/internal/errors"
	"bouncer/internal/inference"
	"bouncer/internal/model"
	"bouncer/internal/repository"
)

// DefaultAnalysisPrompt is submitted when the caller provides no override.
const DefaultAnalysisPrompt = `You are a risk assessment AI analyzing user data for potential security threats.
Analyze the following user information and provide a risk score from 0-100.`

const (
	// batchTimeout bounds one whole batch invocation. When it fires, the
	// remaining profiles are abandoned; writes already persisted stand.
	batchTimeout = 60 * time.Second
	// scoreWorkers bounds concurrent inference calls.
	scoreWorkers = 4
)

// inferenceRate paces inference calls at one per second as a courtesy to the
// service, not a correctness requirement.
var inferenceRate = rate.Every(time.Second)

// Outcome is the per-profile result of one batch pass.
type Outcome struct {
	ProfileID uuid.UUID `json:"profile_id"`
	FullName  string    `json:"full_name,omitempty"`
	Success   bool      `json:"success"`
	RiskScore *int      `json:"risk_score,omitempty"`
	Reasoning string    `json:"reasoning,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// BatchSummary aggregates one batch invocation.
type BatchSummary struct {
	Outcomes  []Outcome `json:"outcomes"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	TimedOut  bool      `json:"timed_out"`
}

// SingleResult is the relay response for scoring one pushed record.
type SingleResult struct {
	RiskScore    int             `json:"risk_score"`
	Explanation  string          `json:"explanation"`
	RawSummaries json.RawMessage `json:"raw_summaries"`
}

// RiskService runs the batch risk calculation over profiles needing scoring.
type RiskService interface {
	// CalculateAll scores every profile carrying the needs-scoring sentinel.
	// One profile's failure never aborts the batch; each eligible profile
	// yields exactly one outcome. Rows already scored are excluded by the
	// selection predicate, so re-runs are no-ops for them.
	CalculateAll(ctx context.Context, promptOverride string) (*BatchSummary, error)
	// CalculateOne scores a single pushed record, the relay path. Returns
	// ErrAlreadyScored when the record already carries a risk level.
	CalculateOne(ctx context.Context, profile *model.Profile) (*SingleResult, error)
}

type riskService struct {
	profileRepo repository.ProfileRepository
	inferClient inference.Client
	recorder    *OutcomeRecorder
	cache       *cache.Client
	logger      *zap.Logger
	limiter     *rate.Limiter
}

// NewRiskService creates the batch risk calculator.
func NewRiskService(
	profileRepo repository.ProfileRepository,
	inferClient inference.Client,
	recorder *OutcomeRecorder,
	cacheClient *cache.Client,
	logger *zap.Logger,
) RiskService {
	return &riskService{
		profileRepo: profileRepo,
		inferClient: inferClient,
		recorder:    recorder,
		cache:       cacheClient,
		logger:      logger,
		limiter:     rate.NewLimiter(inferenceRate, 1),
	}
}

// CalculateAll fans the eligible profiles out to a bounded worker pool.
// Concurrent invocations may race on the same profile row; the store applies
// independent row updates and the last write wins.
func (s *riskService) CalculateAll(ctx context.Context, promptOverride string) (*BatchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	profiles, err := s.profileRepo.ListNeedingScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles needing scoring: %w", err)
	}
	if len(profiles) == 0 {
		s.logger.Info("no profiles need scoring")
		return &BatchSummary{Outcomes: []Outcome{}}, nil
	}

	prompt := promptOverride
	if prompt == "" {
		prompt = DefaultAnalysisPrompt
	}

	s.logger.Info("starting risk calculation batch",
		zap.Int("profiles", len(profiles)),
		zap.Bool("custom_prompt", promptOverride != ""))

	var (
		mu       sync.Mutex
		outcomes []Outcome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreWorkers)
	for _, profile := range profiles {
		profile := profile
		g.Go(func() error {
			// A fired batch timeout abandons the remaining profiles.
			if gctx.Err() != nil {
				return nil
			}
			outcome := s.scoreProfile(gctx, profile, prompt)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			// Per-profile failures are outcome records, never group errors.
			return nil
		})
	}
	_ = g.Wait()

	summary := &BatchSummary{Outcomes: outcomes, TimedOut: ctx.Err() != nil}
	for _, o := range outcomes {
		if o.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("risk calculation batch complete",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Bool("timed_out", summary.TimedOut))
	return summary, nil
}

func (s *riskService) scoreProfile(ctx context.Context, profile model.Profile, prompt string) Outcome {
	logger := s.logger.With(
		zap.String("profile_id", profile.ID.String()),
		zap.String("full_name", profile.FullName))

	if !profile.Searchable() {
		logger.Info("skipping profile with no searchable data")
		return s.record(profile, Outcome{
			ProfileID: profile.ID,
			FullName:  profile.FullName,
			Error:     apperrors.ErrNoSearchableData.Error(),
		})
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return s.record(profile, Outcome{
			ProfileID: profile.ID,
			FullName:  profile.FullName,
			Error:     fmt.Sprintf("batch timed out before inference call: %v", err),
		})
	}

	logger.Info("submitting profile for inference", zap.String("search_text", profile.SearchText()))

	assessment, err := s.inferClient.Analyze(ctx, prompt, profile.SearchText())
	if err != nil {
		logger.Warn("inference call failed", zap.Error(err))
		return s.record(profile, Outcome{
			ProfileID: profile.ID,
			FullName:  profile.FullName,
			Error:     err.Error(),
		})
	}

	reasoning, err := json.Marshal(map[string]string{"explanation": assessment.Explanation})
	if err != nil {
		return s.record(profile, Outcome{
			ProfileID: profile.ID,
			FullName:  profile.FullName,
			Error:     fmt.Sprintf("encode reasoning: %v", err),
		})
	}
	score := assessment.Score()
	if err := s.profileRepo.UpdateRiskAssessment(ctx, profile.ID, score, datatypes.JSON(reasoning), datatypes.JSON(assessment.RawSummaries.Raw)); err != nil {
		logger.Warn("failed to persist risk assessment", zap.Error(err))
		return s.record(profile, Outcome{
			ProfileID: profile.ID,
			FullName:  profile.FullName,
			Error:     fmt.Sprintf("failed to update profile: %v", err),
		})
	}
	_ = s.cache.Delete(ctx, profileCacheKey(profile.ID))

	logger.Info("risk assessment persisted", zap.Int("risk_score", score))
	return s.record(profile, Outcome{
		ProfileID: profile.ID,
		FullName:  profile.FullName,
		Success:   true,
		RiskScore: &score,
		Reasoning: assessment.Explanation,
	})
}

// CalculateOne handles a single pushed record. Unlike the batch path it
// treats any already-present risk level, including 0, as already scored.
func (s *riskService) CalculateOne(ctx context.Context, profile *model.Profile) (*SingleResult, error) {
	if profile == nil {
		return nil, apperrors.ErrMissingProfile
	}
	if profile.RiskLevel != nil {
		s.logger.Info("risk level already exists",
			zap.String("profile_id", profile.ID.String()),
			zap.Int("risk_level", *profile.RiskLevel))
		return nil, apperrors.ErrAlreadyScored
	}

	prompt := detailedAnalysisPrompt(profile)
	assessment, err := s.inferClient.Analyze(ctx, prompt, profile.SearchText())
	if err != nil {
		return nil, err
	}

	reasoning, err := json.Marshal(map[string]string{"explanation": assessment.Explanation})
	if err != nil {
		return nil, err
	}

	score := assessment.Score()
	if err := s.profileRepo.UpdateRiskAssessment(ctx, profile.ID, score, datatypes.JSON(reasoning), datatypes.JSON(assessment.RawSummaries.Raw)); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey(profile.ID))

	s.recorder.Record(model.ScoringOutcome{
		ProfileID: profile.ID,
		Kind:      model.OutcomeKindScore,
		Success:   true,
		RiskScore: &score,
	})
	return &SingleResult{
		RiskScore:    score,
		Explanation:  assessment.Explanation,
		RawSummaries: assessment.RawSummaries.Raw,
	}, nil
}

// detailedAnalysisPrompt embeds every onboarding field the record carries,
// used for pushed records where the full profile is in hand.
func detailedAnalysisPrompt(profile *model.Profile) string {
	return fmt.Sprintf(`You are a risk assessment AI analyzing user data for potential security threats.
Analyze the following user information and provide a risk score from 0-100, where:
- 0-33: Low risk (trusted user)
- 34-66: Medium risk (requires monitoring)
- 67-100: High risk (potential threat)

User Information:
- Name: %s
- Email: %s
- Date of Birth: %s
- City: %s
- Zip Code: %s
- Account Created: %s

Consider factors like:
- Email domain credibility
- Name patterns that might indicate fake accounts
- Geographic location consistency
- Age appropriateness
- Account creation patterns`,
		orDefault(profile.FullName, "Unknown"),
		orDefault(profile.Email, "No email"),
		orDefault(profile.DateOfBirth, "Not provided"),
		orDefault(profile.City, "Not provided"),
		orDefault(profile.ZipCode, "Not provided"),
		profile.CreatedAt.Format(time.RFC3339))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (s *riskService) record(profile model.Profile, outcome Outcome) Outcome {
	s.recorder.Record(model.ScoringOutcome{
		ProfileID: profile.ID,
		Kind:      model.OutcomeKindScore,
		Success:   outcome.Success,
		RiskScore: outcome.RiskScore,
		Detail:    outcome.Error,
	})
	return outcome
}
