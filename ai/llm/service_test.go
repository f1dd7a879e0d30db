package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatCompletionStub mimics the minimal OpenAI-compatible response shape.
func chatCompletionStub(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 7,
			"total_tokens":      19,
		},
	}
}

func TestChat(t *testing.T) {
	var gotRequest struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(chatCompletionStub("generated text")))
	}))
	defer server.Close()

	service, err := NewService(&Config{
		Provider: "openai",
		Model:    "test-model",
		APIKey:   "test-key",
		BaseURL:  server.URL + "/v1",
	})
	require.NoError(t, err)

	content, stats, err := service.Chat(context.Background(), []Message{
		SystemPrompt("be terse"),
		UserMessage("hello"),
	})
	require.NoError(t, err)

	assert.Equal(t, "generated text", content)
	require.NotNil(t, stats)
	assert.Equal(t, 12, stats.PromptTokens)
	assert.Equal(t, 7, stats.CompletionTokens)
	assert.Equal(t, 19, stats.TotalTokens)

	assert.Equal(t, "test-model", gotRequest.Model)
	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "be terse", gotRequest.Messages[0].Content)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
}

func TestChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"insufficient quota"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	service, err := NewService(&Config{
		Provider: "openai",
		Model:    "test-model",
		APIKey:   "test-key",
		BaseURL:  server.URL + "/v1",
	})
	require.NoError(t, err)

	_, _, err = service.Chat(context.Background(), []Message{UserMessage("hello")})
	require.Error(t, err)
}

func TestConvertMessages(t *testing.T) {
	converted := convertMessages([]Message{
		{Role: "system", Content: "s"},
		{Role: "user", Content: "u"},
		{Role: "assistant", Content: "a"},
		{Role: "something-else", Content: "x"},
	})

	require.Len(t, converted, 4)
	assert.Equal(t, "system", converted[0].Role)
	assert.Equal(t, "user", converted[1].Role)
	assert.Equal(t, "assistant", converted[2].Role)
	// Unknown roles fall back to user.
	assert.Equal(t, "user", converted[3].Role)
}

func TestProviderDefaults(t *testing.T) {
	tests := []struct {
		provider string
		baseURL  string
	}{
		{"openai", "https://api.openai.com/v1"},
		{"deepseek", "https://api.deepseek.com"},
		{"zai", "https://open.bigmodel.cn/api/paas/v4"},
		{"siliconflow", "https://api.siliconflow.cn/v1"},
		{"ollama", "http://localhost:11434"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.baseURL, defaultBaseURLs[tt.provider])
		})
	}
}
