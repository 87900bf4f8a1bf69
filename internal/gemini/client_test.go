package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Available(t *testing.T) {
	assert.True(t, NewClient("key", "gemini-2.0-flash").Available())
	assert.False(t, NewClient("", "gemini-2.0-flash").Available())

	var nilClient *Client
	assert.False(t, nilClient.Available())
}

func TestClient_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "hi there"}}}},
			},
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

	text, err := client.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestClient_GenerateText_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

	text, err := client.GenerateText(context.Background(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, text)
}

func TestClient_GenerateText_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

	_, err := client.GenerateText(context.Background(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestClient_GenerateText_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateText(ctx, "hello")
	assert.Error(t, err)
}
