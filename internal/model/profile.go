package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile represents one user record in the profile store.
//
// RiskLevel doubles as the scoring state: NULL or 0 marks a profile that still
// needs scoring; the batch pipeline writes it exactly once per needs-scoring
// state, together with ReasoningSummary and RawJSON.
type Profile struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FullName         string         `json:"full_name" gorm:"size:255;index"`
	Email            string         `json:"email" gorm:"size:255;index"`
	DateOfBirth      string         `json:"date_of_birth,omitempty" gorm:"size:32"`
	City             string         `json:"city,omitempty" gorm:"size:128"`
	ZipCode          string         `json:"zip_code,omitempty" gorm:"size:16"`
	RiskLevel        *int           `json:"risk_level" gorm:"index"`
	ReasoningSummary datatypes.JSON `json:"reasoning_summary,omitempty" gorm:"type:jsonb"`
	RawJSON          datatypes.JSON `json:"raw_json,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Searchable reports whether the profile has a name or email worth querying.
func (p *Profile) Searchable() bool {
	return strings.TrimSpace(p.FullName) != "" || strings.TrimSpace(p.Email) != ""
}

// SearchText builds the quoted search query submitted to the inference
// service: `"name" OR "email"`, empty fields included verbatim.
func (p *Profile) SearchText() string {
	return `"` + p.FullName + `" OR "` + p.Email + `"`
}
