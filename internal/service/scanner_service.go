package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"bouncer/internal/alert"
	"bouncer/internal/model"
	"bouncer/internal/repository"
)

// DefaultHighRiskThreshold selects profiles for alerting when the caller does
// not supply one.
const DefaultHighRiskThreshold = 50

// alertRate paces alert dispatches at two per second, the same courtesy the
// inference pacing provides.
var alertRate = rate.Every(500 * time.Millisecond)

// ScanResult is the per-profile outcome of one scan pass.
type ScanResult struct {
	ProfileID uuid.UUID `json:"profile_id"`
	FullName  string    `json:"full_name,omitempty"`
	RiskLevel int       `json:"risk_level"`
	EmailSent bool      `json:"email_sent"`
	Error     string    `json:"error,omitempty"`
}

// ScanSummary aggregates one scan invocation.
type ScanSummary struct {
	Results       []ScanResult `json:"results"`
	HighRiskCount int          `json:"high_risk_count"`
	EmailsSent    int          `json:"emails_sent"`
	EmailsFailed  int          `json:"emails_failed"`
	ScannedAt     time.Time    `json:"scanned_at"`
}

// ScannerService finds profiles above a risk threshold and dispatches each to
// the alert relay.
type ScannerService interface {
	// Scan processes every profile with risk_level strictly greater than
	// threshold, invoking the alert relay once per profile. Dispatch
	// failures are recorded per profile; the scan never aborts early.
	Scan(ctx context.Context, threshold int) (*ScanSummary, error)
}

type scannerService struct {
	profileRepo repository.ProfileRepository
	relayClient alert.Client
	recorder    *OutcomeRecorder
	logger      *zap.Logger
	limiter     *rate.Limiter
}

// NewScannerService creates the high-risk scanner.
func NewScannerService(
	profileRepo repository.ProfileRepository,
	relayClient alert.Client,
	recorder *OutcomeRecorder,
	logger *zap.Logger,
) ScannerService {
	return &scannerService{
		profileRepo: profileRepo,
		relayClient: relayClient,
		recorder:    recorder,
		logger:      logger,
		limiter:     rate.NewLimiter(alertRate, 1),
	}
}

func (s *scannerService) Scan(ctx context.Context, threshold int) (*ScanSummary, error) {
	profiles, err := s.profileRepo.ListAboveThreshold(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("fetch high-risk profiles: %w", err)
	}

	summary := &ScanSummary{
		Results:       []ScanResult{},
		HighRiskCount: len(profiles),
		ScannedAt:     time.Now().UTC(),
	}
	if len(profiles) == 0 {
		s.logger.Info("no high-risk profiles found", zap.Int("threshold", threshold))
		return summary, nil
	}

	s.logger.Info("scanning high-risk profiles",
		zap.Int("count", len(profiles)),
		zap.Int("threshold", threshold))

	for _, profile := range profiles {
		if err := s.limiter.Wait(ctx); err != nil {
			break
		}
		summary.Results = append(summary.Results, s.dispatch(ctx, profile, threshold))
	}

	for _, r := range summary.Results {
		if r.EmailSent {
			summary.EmailsSent++
		} else {
			summary.EmailsFailed++
		}
	}

	s.logger.Info("scan complete",
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("emails_failed", summary.EmailsFailed))
	return summary, nil
}

func (s *scannerService) dispatch(ctx context.Context, profile model.Profile, threshold int) ScanResult {
	result := ScanResult{
		ProfileID: profile.ID,
		FullName:  profile.FullName,
	}
	if profile.RiskLevel != nil {
		result.RiskLevel = *profile.RiskLevel
	}

	s.logger.Info("dispatching alert",
		zap.String("profile_id", profile.ID.String()),
		zap.Int("risk_level", result.RiskLevel))

	resp, err := s.relayClient.SendAlert(ctx, profile, threshold)
	switch {
	case err != nil:
		result.Error = err.Error()
	case !resp.Success:
		result.Error = resp.Message
		if result.Error == "" {
			result.Error = "failed to send email"
		}
	default:
		result.EmailSent = true
	}

	s.recorder.Record(model.ScoringOutcome{
		ProfileID: profile.ID,
		Kind:      model.OutcomeKindAlert,
		Success:   result.EmailSent,
		RiskScore: profile.RiskLevel,
		Detail:    result.Error,
	})
	return result
}
