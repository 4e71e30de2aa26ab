package whatsapp

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

func TestClientSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(sendResponse{Success: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "+5511999990000", time.Second)
	err := client.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "+5511999990000", got.To)
	assert.Equal(t, "hello", got.Message)
}

func TestClientSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "+5511999990000", time.Second)
	err := client.Send(context.Background(), "hello")
	assert.Error(t, err)
}

func TestClientSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendResponse{Success: false, Error: "invalid number"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "bad", time.Second)
	err := client.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestClientDisabledWithoutGateway(t *testing.T) {
	client := NewClient("", "", "", time.Second)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Send(context.Background(), "hello"))
}
