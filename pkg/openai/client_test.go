package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen/qwen3-32b", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "describe", req.Messages[0].Content)

		fmt.Fprint(w, `{"id":"x","choices":[{"message":{"role":"assistant","content":"# Title"}}]}`)
	}))
	defer srv.Close()

	client := NewClient("key", srv.URL+"/v1/")
	out, err := client.Complete(context.Background(), "qwen/qwen3-32b", 0.7, "describe")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "upstream failure", status: http.StatusUnauthorized, body: `{"error":"invalid key"}`, wantErr: `API returned status 401: {"error":"invalid key"}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices in completion response"},
		{name: "garbage", status: http.StatusOK, body: `<html>`, wantErr: "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient("key", srv.URL).Complete(context.Background(), "m", 0, "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
