package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bouncer/internal/errors"
)

func TestResend_Send(t *testing.T) {
	var gotAuth string
	var gotMsg Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	m := NewResend("re_test_key", srv.URL)
	resp, err := m.Send(context.Background(), Message{
		From:    "alerts@example.com",
		To:      []string{"ops@example.com"},
		Subject: "High Risk User Alert: Alice Doe",
		HTML:    "<h1>High Risk User Detected</h1>",
	})

	require.NoError(t, err)
	assert.Equal(t, "email-123", resp.ID)
	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "alerts@example.com", gotMsg.From)
	assert.Equal(t, []string{"ops@example.com"}, gotMsg.To)
}

func TestResend_Send_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	m := NewResend("re_test_key", srv.URL)
	_, err := m.Send(context.Background(), Message{From: "bad"})

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusUnprocessableEntity, ne.StatusCode)
	assert.Contains(t, ne.Body, "invalid from address")
}

func TestResend_Send_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	m := NewResend("re_test_key", srv.URL)
	_, err := m.Send(context.Background(), Message{})

	var ne *apperrors.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Contains(t, ne.Body, "failed to parse response")
}
