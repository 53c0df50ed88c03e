package domain

import "errors"

var (
	// ErrAnalysisNotFound は解析結果が存在しない場合のエラー
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrDuplicateHash は同一ハッシュのAnalysisが既に存在する場合のエラー。
	// 同一テキストの並行投稿が先に行を作った合図であり、呼び出し側は
	// 再取得による整合で成功として扱う。
	ErrDuplicateHash = errors.New("analysis with the same text hash already exists")
)

// ValidationError は入力検証の失敗を表す
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
