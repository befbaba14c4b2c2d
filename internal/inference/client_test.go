package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bouncer/internal/errors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Analyze_Success(t *testing.T) {
	var gotPrompt, gotText string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze-summaries", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPrompt = r.FormValue("prompt")
		gotText = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"risk_score":75,"explanation":"x","raw_summaries":{"summaries":{"a":1}}}`))
	})

	client := New(srv.URL)
	assessment, err := client.Analyze(context.Background(), "assess risk", `"Alice Doe" OR "alice@example.com"`)

	require.NoError(t, err)
	assert.Equal(t, "assess risk", gotPrompt)
	assert.Equal(t, `"Alice Doe" OR "alice@example.com"`, gotText)
	assert.Equal(t, 75, assessment.Score())
	assert.Equal(t, "x", assessment.Explanation)
	assert.JSONEq(t, `{"summaries":{"a":1}}`, string(assessment.RawSummaries.Raw))
	assert.JSONEq(t, `{"a":1}`, string(assessment.RawSummaries.Summaries))
}

func TestClient_Analyze_ZeroScore(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"risk_score":0,"explanation":"clean","raw_summaries":{"summaries":[]}}`))
	})

	client := New(srv.URL)
	assessment, err := client.Analyze(context.Background(), "p", "t")

	require.NoError(t, err)
	assert.Equal(t, 0, assessment.Score())
}

func TestClient_Analyze_ServerError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model unavailable"}`))
	})

	client := New(srv.URL)
	_, err := client.Analyze(context.Background(), "p", "t")

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.Contains(t, ne.Body, "model unavailable")
}

func TestClient_Analyze_UnparseableBody(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	client := New(srv.URL)
	_, err := client.Analyze(context.Background(), "p", "t")

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Contains(t, ne.Body, "failed to parse response")
}

func TestClient_Analyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing risk_score",
			body:      `{"explanation":"x","raw_summaries":{"summaries":{}}}`,
			wantField: "risk_score",
		},
		{
			name:      "risk_score not a number",
			body:      `{"risk_score":"high","explanation":"x","raw_summaries":{"summaries":{}}}`,
			wantField: "risk_score",
		},
		{
			name:      "risk_score out of range",
			body:      `{"risk_score":140,"explanation":"x","raw_summaries":{"summaries":{}}}`,
			wantField: "risk_score",
		},
		{
			name:      "missing explanation",
			body:      `{"risk_score":75,"raw_summaries":{"summaries":{}}}`,
			wantField: "explanation",
		},
		{
			name:      "missing raw_summaries",
			body:      `{"risk_score":75,"explanation":"x"}`,
			wantField: "raw_summaries",
		},
		{
			name:      "raw_summaries without summaries field",
			body:      `{"risk_score":75,"explanation":"x","raw_summaries":{"other":1}}`,
			wantField: "raw_summaries",
		},
		{
			name:      "raw_summaries not an object",
			body:      `{"risk_score":75,"explanation":"x","raw_summaries":"evidence"}`,
			wantField: "raw_summaries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			client := New(srv.URL)
			_, err := client.Analyze(context.Background(), "p", "t")

			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestClient_Analyze_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := New(srv.URL)
	_, err := client.Analyze(context.Background(), "p", "t")

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.StatusCode)
}
