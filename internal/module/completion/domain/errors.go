package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyNotSet はAPIキーが設定されていない場合のエラー（クライアント構築時に検出）
	ErrAPIKeyNotSet = errors.New("OpenRouter API key not set")

	// ErrTimeout はリモート呼び出しがタイムアウトした場合のエラー
	ErrTimeout = errors.New("completion request timed out")
)

// APIError はリモートAPIが非成功ステータスを返した場合のエラー
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("completion API error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("completion API error (status %d): %s", e.Status, e.Message)
}

// ParseError はリクエストの前提条件違反、またはレスポンスが不正・スキーマ違反の場合のエラー
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
