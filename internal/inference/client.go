package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "bouncer/internal/errors"
)

const analyzePath = "/analyze-summaries"

// Assessment is the decoded, validated response of one inference call.
type Assessment struct {
	RiskScore    *float64     `json:"risk_score" validate:"required,min=0,max=100"`
	Explanation  string       `json:"explanation" validate:"required"`
	RawSummaries RawSummaries `json:"raw_summaries"`
}

// RawSummaries carries the unparsed supporting evidence. Raw preserves the
// whole object exactly as received so it can be persisted verbatim.
type RawSummaries struct {
	Raw       json.RawMessage `json:"-"`
	Summaries json.RawMessage `json:"summaries" validate:"required"`
}

// Score returns the risk score as an int in [0,100].
func (a *Assessment) Score() int {
	if a.RiskScore == nil {
		return 0
	}
	return int(*a.RiskScore)
}

// Client submits search queries to the external inference service.
type Client interface {
	// Analyze posts prompt and text as a multipart form and returns the
	// decoded assessment. Non-2xx or an unparseable body is a NetworkError;
	// a parseable body with a missing or out-of-range field is a
	// ValidationError. No retries.
	Analyze(ctx context.Context, prompt, text string) (*Assessment, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// New creates an inference client for the given base URL.
func New(baseURL string) Client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		validate:   validator.New(),
	}
}

func (c *client) Analyze(ctx context.Context, prompt, text string) (*Assessment, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := writer.WriteField("text", text); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(analyzePath, 0, err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(analyzePath, resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewNetworkError(analyzePath, resp.StatusCode, string(payload))
	}

	return c.decode(payload, resp.StatusCode)
}

// decode applies the response schema once, at the boundary: risk_score numeric
// in [0,100], explanation non-empty, raw_summaries an object containing a
// summaries field. A body that is not JSON at all is a NetworkError; a JSON
// body with a missing or mistyped field is a ValidationError.
func (c *client) decode(payload []byte, statusCode int) (*Assessment, error) {
	var probe struct {
		RiskScore    json.RawMessage `json:"risk_score"`
		Explanation  json.RawMessage `json:"explanation"`
		RawSummaries json.RawMessage `json:"raw_summaries"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, apperrors.NewNetworkError(analyzePath, statusCode, "failed to parse response: "+string(payload))
	}

	var assessment Assessment
	if len(probe.RiskScore) > 0 {
		if err := json.Unmarshal(probe.RiskScore, &assessment.RiskScore); err != nil {
			return nil, apperrors.NewValidationError("risk_score", "must be a number between 0 and 100")
		}
	}
	if len(probe.Explanation) > 0 {
		if err := json.Unmarshal(probe.Explanation, &assessment.Explanation); err != nil {
			return nil, apperrors.NewValidationError("explanation", "must be a non-empty string")
		}
	}
	if len(probe.RawSummaries) > 0 {
		assessment.RawSummaries.Raw = probe.RawSummaries
		var inner struct {
			Summaries json.RawMessage `json:"summaries"`
		}
		if err := json.Unmarshal(probe.RawSummaries, &inner); err != nil {
			return nil, apperrors.NewValidationError("raw_summaries", "must be an object containing a summaries field")
		}
		assessment.RawSummaries.Summaries = inner.Summaries
	}

	if err := c.validate.Struct(&assessment); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].StructNamespace() {
			case "Assessment.RiskScore":
				return nil, apperrors.NewValidationError("risk_score", "must be a number between 0 and 100")
			case "Assessment.Explanation":
				return nil, apperrors.NewValidationError("explanation", "must be a non-empty string")
			default:
				return nil, apperrors.NewValidationError("raw_summaries", "must be an object containing a summaries field")
			}
		}
		return nil, apperrors.NewValidationError("response", err.Error())
	}
	if string(assessment.RawSummaries.Summaries) == "null" {
		return nil, apperrors.NewValidationError("raw_summaries", "must be an object containing a summaries field")
	}
	return &assessment, nil
}
