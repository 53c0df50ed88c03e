package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
)

// SavedItem はユーザーと解析結果の保存関係。
// (UserID, AnalysisID) の組はユニークで、同じ解析を二度保存することはできない。
type SavedItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"-"`
	AnalysisID uuid.UUID `json:"analysisId"`
	SavedAt    time.Time `json:"savedAt"`
}

// SavedItemWithAnalysis は一覧表示用に解析結果を結合した保存アイテム
type SavedItemWithAnalysis struct {
	SavedItem
	Analysis analysisdomain.Analysis `json:"analysis"`
}

// Page は保存アイテムの1ページ分の結果
type Page struct {
	Items    []SavedItemWithAnalysis `json:"items"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
	Total    int64                   `json:"total"`
}

// ソート可能なカラムの識別子
const (
	SortBySavedAt      = "savedAt"
	SortByOriginalText = "originalText"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query は保存アイテム一覧の検索条件
type Query struct {
	// Q は原文・翻訳に対する部分一致検索語。空なら絞り込みなし。
	Q        string
	Page     int
	PageSize int
	Sort     string
	Order    string
}

// Repository は保存アイテムの永続化ポート
type Repository interface {
	Create(ctx context.Context, userID, analysisID uuid.UUID) (*SavedItem, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	IsSaved(ctx context.Context, userID, analysisID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, query Query) ([]SavedItemWithAnalysis, error)
	Count(ctx context.Context, userID uuid.UUID, q string) (int64, error)
	GetSavedAnalysis(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error)
}
