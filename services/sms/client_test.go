package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url, token string) *Client {
	return &Client{
		apiURL:   url,
		token:    token,
		senderID: "GlowTheory",
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClientSend(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/send", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(sendResponse{Status: "success"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-token")
	err := client.Send(context.Background(), "94771234567", "hello")
	require.NoError(t, err)

	assert.Equal(t, "94771234567", got.Recipient)
	assert.Equal(t, "GlowTheory", got.SenderID)
	assert.Equal(t, "plain", got.Type)
	assert.Equal(t, "hello", got.Message)
}

func TestClientSendGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendResponse{Status: "error", Message: "invalid recipient"})
	}))
	defer server.Close()

	err := newTestClient(server.URL, "test-token").Send(context.Background(), "123", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestClientSendGatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := newTestClient(server.URL, "bad-token").Send(context.Background(), "94771234567", "hello")
	assert.Error(t, err)
}

func TestClientSendWithoutTokenSkipsDispatch(t *testing.T) {
	// No token means degraded mode: log and report success so booking flows
	// keep working in local environments.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without a token")
	}))
	defer server.Close()

	err := newTestClient(server.URL, "").Send(context.Background(), "94771234567", "hello")
	assert.NoError(t, err)
}
