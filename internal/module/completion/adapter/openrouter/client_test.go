package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakaru-app/wakaru-api/internal/module/completion/adapter/openrouter"
	"github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
)

// completionResponse はOpenAI互換のチャット補完レスポンスを組み立てる
func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, handler http.Handler) (*openrouter.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := openrouter.NewClient(openrouter.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client, server
}

var testSchema = &domain.Schema{
	Name: "test_payload",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	},
}

func TestNewClient(t *testing.T) {
	t.Run("APIキー未設定はErrAPIKeyNotSet", func(t *testing.T) {
		_, err := openrouter.NewClient(openrouter.Config{})
		require.ErrorIs(t, err, domain.ErrAPIKeyNotSet)
	})
}

func TestClient_Complete(t *testing.T) {
	messages := []domain.Message{
		{Role: domain.RoleUser, Content: "こんにちは"},
	}

	t.Run("スキーマ付き補完は検証済みの構造化ペイロードを返す", func(t *testing.T) {
		var requestBody map[string]any
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&requestBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse(t, `{"name":"test"}`))
		}))

		result, err := client.Complete(context.Background(), messages, domain.Options{
			Model:  "test-model",
			Schema: testSchema,
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"test"}`, string(result.Structured))
		assert.Equal(t, "test-model", result.Model)
		require.NotNil(t, result.Usage)
		assert.Equal(t, 30, result.Usage.TotalTokens)

		// strictモードのresponse_formatが送信されている
		format, ok := requestBody["response_format"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "json_schema", format["type"])
		jsonSchema := format["json_schema"].(map[string]any)
		assert.Equal(t, "test_payload", jsonSchema["name"])
		assert.Equal(t, true, jsonSchema["strict"])
		schema := jsonSchema["schema"].(map[string]any)
		assert.Equal(t, false, schema["additionalProperties"])
	})

	t.Run("スキーマ違反のレスポンスはParseError", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse(t, `{"wrong":"shape"}`))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{
			Model:  "test-model",
			Schema: testSchema,
		})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("選択肢のないレスポンスはParseError", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","model":"test-model","choices":[]}`))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("空のメッセージ本文はParseError", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(completionResponse(t, ""))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("ネストされたerror.messageをAPIErrorへ変換する", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key","code":"invalid_api_key"}}`))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "invalid api key", apiErr.Message)
		assert.Equal(t, "invalid_api_key", apiErr.Code)
	})

	t.Run("ルートのmessageへフォールバックする", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"upstream provider unavailable"}`))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "upstream provider unavailable", apiErr.Message)
	})

	t.Run("JSONでないボディはそのままメッセージになる", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("service unavailable"))
		}))

		_, err := client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
		assert.Contains(t, apiErr.Message, "service unavailable")
	})

	t.Run("タイムアウトはErrTimeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			w.Write(completionResponse(t, "late"))
		}))
		t.Cleanup(server.Close)

		client, err := openrouter.NewClient(openrouter.Config{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Timeout: 50 * time.Millisecond,
		})
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), messages, domain.Options{Model: "test-model"})
		require.ErrorIs(t, err, domain.ErrTimeout)
	})

	t.Run("文字数上限超過はネットワーク呼び出し前に失敗する", func(t *testing.T) {
		var requests atomic.Int32
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.Write(completionResponse(t, "ok"))
		}))

		tooLong := []domain.Message{
			{Role: domain.RoleUser, Content: strings.Repeat("あ", 8_001)},
		}
		_, err := client.Complete(context.Background(), tooLong, domain.Options{Model: "test-model"})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("合計文字数の上限も適用される", func(t *testing.T) {
		var requests atomic.Int32
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.Write(completionResponse(t, "ok"))
		}))

		chunk := strings.Repeat("あ", 7_000)
		tooLong := []domain.Message{
			{Role: domain.RoleSystem, Content: chunk},
			{Role: domain.RoleUser, Content: chunk},
			{Role: domain.RoleUser, Content: chunk},
			{Role: domain.RoleUser, Content: chunk},
			{Role: domain.RoleUser, Content: chunk},
		}
		_, err := client.Complete(context.Background(), tooLong, domain.Options{Model: "test-model"})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("空のメッセージリストは拒否する", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionResponse(t, "ok"))
		}))

		_, err := client.Complete(context.Background(), nil, domain.Options{Model: "test-model"})

		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}
