package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-agent/internal/config"
)

func TestCommandGenerator_EchoesStdout(t *testing.T) {
	g := NewCommandGenerator("echo", "sh", []string{"-c", "cat"}, 5*time.Second)

	out, err := g.Generate(context.Background(), "  hello from stdin \n")
	require.NoError(t, err)
	assert.Equal(t, "hello from stdin", out)
	assert.Equal(t, "echo", g.Name())
}

func TestCommandGenerator_NonZeroExit(t *testing.T) {
	g := NewCommandGenerator("broken", "sh", []string{"-c", "echo model missing >&2; exit 3"}, 5*time.Second)

	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Contains(t, err.Error(), "status 3")
	assert.Contains(t, err.Error(), "model missing")
}

func TestCommandGenerator_MissingBinary(t *testing.T) {
	g := NewOllamaGenerator(config.OllamaConfig{Command: "definitely-not-a-real-binary-xyz", Model: "llama2"})

	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
}

func TestCommandGenerator_EmptyOutput(t *testing.T) {
	g := NewCommandGenerator("silent", "sh", []string{"-c", "cat >/dev/null"}, 5*time.Second)

	_, err := g.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestCommandGenerator_Timeout(t *testing.T) {
	g := NewCommandGenerator("slow", "sh", []string{"-c", "exec sleep 5"}, 50*time.Millisecond)

	_, err := g.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func newChatServer(t *testing.T, status int, content string, seen *ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"nope"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatConfig(baseURL string) *config.OpenRouterConfig {
	return &config.OpenRouterConfig{
		APIKey:      "sk-test",
		APIBase:     baseURL,
		ChatModel:   "test-model",
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
		Enabled:     true,
	}
}

func TestChatGenerator_SendsPersonaAndParameters(t *testing.T) {
	var seen ChatCompletionRequest
	srv := newChatServer(t, http.StatusOK, "A great pick is the Panaji house.", &seen)

	g := NewChatGenerator(NewOpenAIClient(chatConfig(srv.URL), nil))
	out, err := g.Generate(context.Background(), "context block")
	require.NoError(t, err)

	assert.Equal(t, "A great pick is the Panaji house.", out)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, agentPersona, seen.Messages[0].Content)
	assert.Equal(t, ChatMessage{Role: "user", Content: "context block"}, seen.Messages[1])
	assert.Equal(t, 500, seen.MaxTokens)
	require.NotNil(t, seen.Temperature)
	assert.InDelta(t, 0.7, *seen.Temperature, 1e-9)
	assert.Equal(t, "test-model", seen.Model)
}

func TestChatGenerator_Failures(t *testing.T) {
	t.Run("unauthorized is fatal", func(t *testing.T) {
		srv := newChatServer(t, http.StatusUnauthorized, "", nil)
		_, err := NewChatGenerator(NewOpenAIClient(chatConfig(srv.URL), nil)).Generate(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, IsFatal(err))
	})

	t.Run("server error is transient", func(t *testing.T) {
		srv := newChatServer(t, http.StatusBadGateway, "", nil)
		_, err := NewChatGenerator(NewOpenAIClient(chatConfig(srv.URL), nil)).Generate(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("empty content", func(t *testing.T) {
		srv := newChatServer(t, http.StatusOK, "  ", nil)
		_, err := NewChatGenerator(NewOpenAIClient(chatConfig(srv.URL), nil)).Generate(context.Background(), "p")
		assert.Error(t, err)
	})

	t.Run("disabled client", func(t *testing.T) {
		cfg := chatConfig("http://127.0.0.1:0")
		cfg.Enabled = false
		_, err := NewChatGenerator(NewOpenAIClient(cfg, nil)).Generate(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, IsFatal(err))
	})
}
