package domain

import (
	"context"
	"encoding/json"
)

// Role はチャットメッセージの役割
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message はチャット補完APIへ送信するメッセージ
type Message struct {
	Role    Role
	Content string
}

// Schema は構造化出力の制約となるJSONスキーマ
// Definition は汎用変換器（リフレクション等）が出力した生のスキーママップで、
// strictモード向けの整形はクライアント側で行う
type Schema struct {
	Name       string
	Definition map[string]any
}

// Options は補完リクエストのオプション
type Options struct {
	Model       string
	Schema      *Schema
	Temperature *float64
	MaxTokens   *int
}

// Usage はトークン使用量
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Result は補完結果
// Schemaを指定した場合、Structuredには検証済みのJSONペイロードが入る
type Result struct {
	Content    string
	Structured json.RawMessage
	Usage      *Usage
	Model      string
}

// Completer は構造化補完クライアントのポート
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts Options) (*Result, error)
}
