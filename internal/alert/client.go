package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "bouncer/internal/errors"
	"bouncer/internal/model"
)

// Request is the relay's wire format: one profile record plus an optional
// threshold override.
type Request struct {
	Record            *model.Profile `json:"record"`
	HighRiskThreshold *int           `json:"highRiskThreshold,omitempty"`
}

// Response is the relay's reply.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Client posts high-risk profiles to the alert relay endpoint.
type Client interface {
	SendAlert(ctx context.Context, profile model.Profile, threshold int) (*Response, error)
}

type client struct {
	relayURL   string
	httpClient *http.Client
}

// NewClient creates an alert relay client for the given endpoint URL.
func NewClient(relayURL string) Client {
	return &client{
		relayURL:   relayURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *client) SendAlert(ctx context.Context, profile model.Profile, threshold int) (*Response, error) {
	payload, err := json.Marshal(Request{Record: &profile, HighRiskThreshold: &threshold})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(c.relayURL, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(c.relayURL, resp.StatusCode, err.Error())
	}

	var relayResp Response
	if err := json.Unmarshal(body, &relayResp); err != nil {
		return nil, apperrors.NewNetworkError(c.relayURL, resp.StatusCode, "failed to parse response: "+string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &relayResp, apperrors.NewNetworkError(c.relayURL, resp.StatusCode, string(body))
	}
	return &relayResp, nil
}
