package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"college-chat/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionJSON = `{
  "id": "gen-1",
  "object": "chat.completion",
  "created": 1720000000,
  "model": "mistralai/mistral-7b-instruct:free",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "Office hours are 2-4pm."}
  }]
}`

func fakeLLM(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			json.Unmarshal(data, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAI(url string) *AIService {
	return NewAIService(config.LLMConfig{
		BaseURL: url + "/",
		APIKey:  "sk-test",
		Model:   "mistralai/mistral-7b-instruct:free",
	}, 5*time.Second)
}

func TestAnswerReturnsContent(t *testing.T) {
	var seen map[string]any
	srv := fakeLLM(t, http.StatusOK, completionJSON, &seen)

	got, err := newTestAI(srv.URL).Answer(context.Background(), "When are office hours?")
	require.NoError(t, err)
	assert.Equal(t, "Office hours are 2-4pm.", got)

	assert.Equal(t, "mistralai/mistral-7b-instruct:free", seen["model"])
	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "When are office hours?", first["content"])
}

func TestAnswerFailuresAreErrors(t *testing.T) {
	srv := fakeLLM(t, http.StatusInternalServerError, `{"error":{"message":"upstream down"}}`, nil)

	got, err := newTestAI(srv.URL).Answer(context.Background(), "hi")
	require.ErrorIs(t, err, ErrAnswerUnavailable)
	assert.Empty(t, got)
}

func TestAnswerEmptyChoices(t *testing.T) {
	srv := fakeLLM(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)

	_, err := newTestAI(srv.URL).Answer(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrAnswerUnavailable)
}

func TestAnswerWithoutKey(t *testing.T) {
	s := NewAIService(config.LLMConfig{Model: "m"}, time.Second)
	assert.False(t, s.Configured())

	_, err := s.Answer(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrAnswerUnavailable)
}

func TestAnswerEmptyPrompt(t *testing.T) {
	_, err := newTestAI("http://127.0.0.1:1").Answer(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
