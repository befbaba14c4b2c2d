package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome kinds.
const (
	OutcomeKindScore = "score"
	OutcomeKindAlert = "alert"
)

// ScoringOutcome is one per-profile result of a batch pass, persisted for
// audit. Written asynchronously; a lost outcome row never fails the batch.
type ScoringOutcome struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uuid.UUID `json:"profile_id" gorm:"type:uuid;index"`
	Kind      string    `json:"kind" gorm:"size:16;index"`
	Success   bool      `json:"success"`
	RiskScore *int      `json:"risk_score,omitempty"`
	Detail    string    `json:"detail,omitempty" gorm:"size:2048"`
	CreatedAt time.Time `json:"created_at"`
}
