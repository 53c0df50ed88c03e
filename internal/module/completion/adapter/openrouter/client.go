package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
)

const (
	// DefaultBaseURL はOpenRouterのAPIエンドポイント
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 30 * time.Second

	// maxMessageLength は1メッセージあたりの文字数上限
	maxMessageLength = 8_000

	// maxTotalLength は全メッセージ合計の文字数上限
	maxTotalLength = 32_000
)

// Config はOpenRouterクライアントの設定
type Config struct {
	APIKey  string
	SiteURL string
	AppName string
	BaseURL string
	Timeout time.Duration
}

// Client はOpenRouter API（OpenAI互換）を使用した構造化補完クライアント
// リトライはコアに持たない方針のため、SDKの自動リトライは無効化している
type Client struct {
	client  openai.Client
	timeout time.Duration
}

// NewClient は設定からClientを作成する。APIキー未設定は構築時点でエラーになる。
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrAPIKeyNotSet
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.AppName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.AppName))
	}

	return &Client{
		client:  openai.NewClient(opts...),
		timeout: timeout,
	}, nil
}

// インターフェース実装の確認
var _ domain.Completer = (*Client)(nil)

// Complete はチャット補完を実行する
// Schemaが指定された場合はstrictなJSONスキーマ制約付きで呼び出し、
// レスポンスをスキーマ検証した上で返す
func (c *Client) Complete(ctx context.Context, messages []domain.Message, opts domain.Options) (*domain.Result, error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(opts.Model),
		Messages: toSDKMessages(messages),
	}
	if opts.Temperature != nil {
		params.Temperature = openai.Float(*opts.Temperature)
	}
	if opts.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*opts.MaxTokens))
	}

	var strictSchema map[string]any
	if opts.Schema != nil {
		name := opts.Schema.Name
		if name == "" {
			name = "output_schema"
		}
		strictSchema = buildStrictSchema(opts.Schema.Definition, name)
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   name,
					Strict: openai.Bool(true),
					Schema: strictSchema,
				},
			},
		}
	}

	// タイムアウト付きコンテキストの作成
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, translateError(err)
	}

	if len(completion.Choices) == 0 {
		return nil, &domain.ParseError{Message: "completion response has no choices"}
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, &domain.ParseError{Message: "completion response has no message content"}
	}

	result := &domain.Result{
		Content: content,
		Model:   completion.Model,
		Usage: &domain.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}

	if opts.Schema != nil {
		structured, err := validateStructured(strictSchema, content)
		if err != nil {
			return nil, err
		}
		result.Structured = structured
	}

	return result, nil
}

// validateMessages はネットワーク呼び出し前の前提条件チェック
func validateMessages(messages []domain.Message) error {
	if len(messages) == 0 {
		return &domain.ParseError{Message: "messages must not be empty"}
	}

	total := 0
	for _, m := range messages {
		if m.Content == "" {
			return &domain.ParseError{Message: "message content must not be empty"}
		}
		length := utf8.RuneCountInString(m.Content)
		if length > maxMessageLength {
			return &domain.ParseError{Message: fmt.Sprintf("message content exceeds %d characters", maxMessageLength)}
		}
		total += length
	}

	if total > maxTotalLength {
		return &domain.ParseError{Message: fmt.Sprintf("total message length exceeds %d characters", maxTotalLength)}
	}

	return nil
}

func toSDKMessages(messages []domain.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			result = append(result, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			result = append(result, openai.AssistantMessage(m.Content))
		default:
			result = append(result, openai.UserMessage(m.Content))
		}
	}
	return result
}

// translateError はSDKのエラーをドメインのエラー分類へ変換する
func translateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message, code := extractErrorDetails(apiErr.RawJSON(), apiErr.StatusCode)
		return &domain.APIError{
			Status:  apiErr.StatusCode,
			Code:    code,
			Message: message,
		}
	}

	return fmt.Errorf("completion request failed: %w", err)
}

// extractErrorDetails はエラーレスポンスボディから人間可読なメッセージと
// エラーコードを取り出す。探索順はネストされたerrorオブジェクトのmessage →
// ルートのmessage → ボディそのもの → 汎用メッセージ。
func extractErrorDetails(body string, status int) (message string, code string) {
	fallback := strings.TrimSpace(body)
	if fallback == "" {
		fallback = fmt.Sprintf("OpenRouter API error (%d)", status)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return fallback, ""
	}

	if errObj, ok := parsed["error"].(map[string]any); ok {
		message, _ = errObj["message"].(string)
		code, _ = errObj["code"].(string)
	}
	if message == "" {
		message, _ = parsed["message"].(string)
	}
	if code == "" {
		code, _ = parsed["code"].(string)
	}
	if message == "" {
		message = fallback
	}

	return message, code
}
