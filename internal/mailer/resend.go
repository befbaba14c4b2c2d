package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "bouncer/internal/errors"
)

const defaultBaseURL = "https://api.resend.com"

// Message is one transactional email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse echoes the provider's response body.
type SendResponse struct {
	ID string `json:"id"`
}

// Mailer sends transactional email through the external provider.
type Mailer interface {
	// Send submits the message. A non-2xx response surfaces as a
	// NetworkError carrying the provider's error payload; never retried.
	Send(ctx context.Context, msg Message) (*SendResponse, error)
}

type resendMailer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewResend creates a Resend-backed mailer. baseURL overrides the provider
// endpoint for tests; empty means the real API.
func NewResend(apiKey, baseURL string) Mailer {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &resendMailer{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *resendMailer) Send(ctx context.Context, msg Message) (*SendResponse, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("/emails", 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("/emails", resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewNetworkError("/emails", resp.StatusCode, string(body))
	}

	var sendResp SendResponse
	if err := json.Unmarshal(body, &sendResp); err != nil {
		return nil, apperrors.NewNetworkError("/emails", resp.StatusCode, "failed to parse response: "+string(body))
	}
	return &sendResp, nil
}
