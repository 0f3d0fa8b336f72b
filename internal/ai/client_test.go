package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "hello"}}]}`))
	}))
	defer srv.Close()

	c := &ChatClient{Client: srv.Client(), BaseURL: srv.URL, APIKey: "test-key", Model: "gpt-4o-mini"}
	out, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.Equal(t, float64(0), gotBody["temperature"])
	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestChatClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &ChatClient{Client: srv.Client(), BaseURL: srv.URL, APIKey: "k", Model: "m"}
	_, err := c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := &ChatClient{Client: srv.Client(), BaseURL: srv.URL, APIKey: "k", Model: "m"}
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestOCRClientExtractText(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/ocr", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"pages": [{"markdown": "page one"}, {"markdown": "page two"}]}`))
	}))
	defer srv.Close()

	c := &OCRClient{Client: srv.Client(), BaseURL: srv.URL, APIKey: "k", Model: "mistral-ocr-latest"}
	text, err := c.ExtractText(context.Background(), []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "page one\n\n=== PAGE BREAK ===\n\npage two", text)

	doc := gotBody["document"].(map[string]any)
	assert.Equal(t, "document_url", doc["type"])
	assert.True(t, strings.HasPrefix(doc["document_url"].(string), "data:application/pdf;base64,"))
}

func TestOCRClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad document", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := &OCRClient{Client: srv.Client(), BaseURL: srv.URL, APIKey: "k", Model: "m"}
	_, err := c.ExtractText(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestStripJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"Here is the result:\n{\"a\": 1}\nHope that helps!", `{"a": 1}`},
		{"no json here", "no json here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripJSON(tt.in), "input %q", tt.in)
	}
}
