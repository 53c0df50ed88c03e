package domain

import (
	"context"

	"github.com/google/uuid"
)

// Reader は解析結果の読み取りポート
type Reader interface {
	// GetByHash はテキストハッシュで解析結果を取得する。
	// 見つからない場合はErrAnalysisNotFoundを返す（正常系）。
	GetByHash(ctx context.Context, textHash string) (*Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListFeatured(ctx context.Context, limit int) ([]*Analysis, error)
}

// Writer は解析結果の書き込みポート
type Writer interface {
	// Create は新しい解析結果を永続化する。
	// text_hashのユニーク制約違反はErrDuplicateHashとして返す。
	Create(ctx context.Context, originalText, textHash string, data AnalysisData, translation *string) (*Analysis, error)
}

// Repository は読み書き両方のポート
type Repository interface {
	Reader
	Writer
}

// Analyzer は日本語テキストをAIで解析するポート
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*AnalysisResult, error)
}

// AnalysisResult はAnalyzerが返す解析結果
type AnalysisResult struct {
	Data        AnalysisData
	Translation string
}
