package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bouncer/internal/errors"
	"bouncer/internal/model"
)

func TestClient_SendAlert(t *testing.T) {
	level := 80
	profile := model.Profile{
		ID:        uuid.New(),
		FullName:  "Alice Doe",
		RiskLevel: &level,
	}

	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"success":true,"data":{"id":"email-123"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.SendAlert(context.Background(), profile, 66)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"id":"email-123"}`, string(resp.Data))
	require.NotNil(t, gotReq.Record)
	assert.Equal(t, profile.ID, gotReq.Record.ID)
	require.NotNil(t, gotReq.HighRiskThreshold)
	assert.Equal(t, 66, *gotReq.HighRiskThreshold)
}

func TestClient_SendAlert_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Risk level not over threshold, no email sent."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.SendAlert(context.Background(), model.Profile{ID: uuid.New()}, 66)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Risk level not over threshold, no email sent.", resp.Message)
}

func TestClient_SendAlert_RelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"mail provider down"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.SendAlert(context.Background(), model.Profile{ID: uuid.New()}, 66)

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	// The parsed relay envelope is still returned alongside the error.
	require.NotNil(t, resp)
	assert.JSONEq(t, `"mail provider down"`, string(resp.Error))
}

func TestClient_SendAlert_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SendAlert(context.Background(), model.Profile{ID: uuid.New()}, 66)

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.StatusCode)
}
