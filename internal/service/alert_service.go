package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"bouncer/internal/mailer"
	"bouncer/internal/model"
)

// maxEvidenceFieldChars truncates long evidence strings for email-size
// hygiene.
const maxEvidenceFieldChars = 500

// AlertResult is the relay's terminal state for one request: either "not
// sent" with a message, or a dispatched email with the provider's response.
type AlertResult struct {
	Sent             bool                 `json:"sent"`
	Message          string               `json:"message,omitempty"`
	ProviderResponse *mailer.SendResponse `json:"provider_response,omitempty"`
}

// AlertService decides whether a profile's risk warrants an email and sends
// it. Stateless per request: evaluate, then either terminate or dispatch.
type AlertService interface {
	// ProcessAlert applies the threshold (default when nil) and dispatches
	// an email for profiles strictly above it. A provider failure is
	// returned as an error carrying the provider's payload; never retried.
	ProcessAlert(ctx context.Context, profile *model.Profile, threshold *int) (*AlertResult, error)
}

type alertService struct {
	mail   mailer.Mailer
	from   string
	to     []string
	logger *zap.Logger
}

// NewAlertService creates the alert relay service.
func NewAlertService(mail mailer.Mailer, from, to string, logger *zap.Logger) AlertService {
	return &alertService{
		mail:   mail,
		from:   from,
		to:     []string{to},
		logger: logger,
	}
}

func (s *alertService) ProcessAlert(ctx context.Context, profile *model.Profile, threshold *int) (*AlertResult, error) {
	limit := DefaultHighRiskThreshold
	if threshold != nil {
		limit = *threshold
	}

	if profile.RiskLevel == nil || *profile.RiskLevel <= limit {
		s.logger.Info("risk level not over threshold, no email sent",
			zap.String("profile_id", profile.ID.String()),
			zap.Int("threshold", limit))
		return &AlertResult{Message: "Risk level not over threshold, no email sent."}, nil
	}

	s.logger.Info("sending high risk alert",
		zap.String("profile_id", profile.ID.String()),
		zap.String("full_name", profile.FullName),
		zap.Int("risk_level", *profile.RiskLevel))

	resp, err := s.mail.Send(ctx, mailer.Message{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("High Risk User Alert: %s", orNA(profile.FullName)),
		HTML:    s.formatEmail(profile, limit),
	})
	if err != nil {
		s.logger.Warn("alert email failed",
			zap.String("profile_id", profile.ID.String()),
			zap.Error(err))
		return nil, err
	}
	return &AlertResult{Sent: true, ProviderResponse: resp}, nil
}

// formatEmail renders the alert body: profile fields, the stored reasoning
// explanation, and the raw evidence rendered field by field.
func (s *alertService) formatEmail(profile *model.Profile, threshold int) string {
	var b strings.Builder
	b.WriteString("<h1>High Risk User Detected</h1>\n")
	fmt.Fprintf(&b, "<p>A user has been flagged with a risk level greater than %d.</p>\n", threshold)
	b.WriteString("<ul>\n")
	fmt.Fprintf(&b, "<li><strong>User ID:</strong> %s</li>\n", profile.ID)
	fmt.Fprintf(&b, "<li><strong>Full Name:</strong> %s</li>\n", html.EscapeString(orNA(profile.FullName)))
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>\n", html.EscapeString(orNA(profile.Email)))
	fmt.Fprintf(&b, "<li><strong>Risk Level:</strong> <strong>%d</strong></li>\n", *profile.RiskLevel)
	fmt.Fprintf(&b, "<li><strong>Timestamp:</strong> %s</li>\n", time.Now().UTC().Format(time.RFC1123))
	b.WriteString("</ul>\n")

	if explanation := extractExplanation(profile.ReasoningSummary); explanation != "" {
		b.WriteString("<h2>Risk Assessment</h2>\n")
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(truncate(explanation)))
	}

	if fields := flattenEvidence(profile.RawJSON); len(fields) > 0 {
		b.WriteString("<h2>Supporting Evidence</h2>\n<ul>\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>\n",
				html.EscapeString(f.key), html.EscapeString(truncate(f.value)))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<p>Please review this user's activity in your dashboard.</p>\n")
	return b.String()
}

func extractExplanation(reasoning []byte) string {
	if len(reasoning) == 0 {
		return ""
	}
	var parsed struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(reasoning, &parsed); err != nil {
		return ""
	}
	return parsed.Explanation
}

type evidenceField struct {
	key   string
	value string
}

// flattenEvidence renders each top-level field of the raw evidence payload as
// a key/value pair, keys sorted for stable output.
func flattenEvidence(raw []byte) []evidenceField {
	if len(raw) == 0 {
		return nil
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []evidenceField{{key: "evidence", value: string(raw)}}
	}
	fields := make([]evidenceField, 0, len(parsed))
	for key, value := range parsed {
		var str string
		if err := json.Unmarshal(value, &str); err != nil {
			str = string(value)
		}
		fields = append(fields, evidenceField{key: key, value: str})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })
	return fields
}

// truncate cuts at a rune boundary so a multi-byte character straddling the
// limit never leaves invalid UTF-8 in the email body.
func truncate(s string) string {
	if len(s) <= maxEvidenceFieldChars {
		return s
	}
	cut := maxEvidenceFieldChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
