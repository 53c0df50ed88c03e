package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
)

// SubmitResult はテキスト投稿の結果
type SubmitResult struct {
	Analysis     *domain.Analysis
	Deduplicated bool
}

// AnalysisService は投稿テキストを永続化された重複排除済みAnalysisへ変換する
// オーケストレーターです。プロセス内ロックは持たず、同一テキストの並行投稿の
// 直列化はストアのユニーク制約だけに委ねます。
type AnalysisService struct {
	repo     domain.Repository
	analyzer domain.Analyzer
	logger   *slog.Logger
}

// NewAnalysisService は新しいAnalysisServiceを作成します
func NewAnalysisService(repo domain.Repository, analyzer domain.Analyzer, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		repo:     repo,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Submit はテキストを検証・ハッシュ化し、既存の解析結果があればそれを、
// なければAIで解析して永続化した結果を返します。
func (s *AnalysisService) Submit(ctx context.Context, rawText string) (*SubmitResult, error) {
	trimmed, err := domain.ValidateText(rawText)
	if err != nil {
		return nil, err
	}

	textHash := domain.TextHash(trimmed)

	existing, err := s.repo.GetByHash(ctx, textHash)
	if err == nil {
		// キャッシュヒット: AI呼び出しを行わない
		return &SubmitResult{Analysis: existing, Deduplicated: true}, nil
	}
	if !errors.Is(err, domain.ErrAnalysisNotFound) {
		return nil, fmt.Errorf("failed to look up analysis by hash: %w", err)
	}

	result, err := s.analyzer.Analyze(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze text: %w", err)
	}

	var translation *string
	if result.Translation != "" {
		translation = &result.Translation
	}

	created, err := s.repo.Create(ctx, trimmed, textHash, result.Data, translation)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateHash) {
			// 同一テキストの並行投稿が先に行を作った。制約違反はエラーではなく
			// 競争に負けた合図なので、勝者の行を取得して成功として返す。
			winner, refetchErr := s.repo.GetByHash(ctx, textHash)
			if refetchErr != nil {
				return nil, fmt.Errorf("failed to reconcile duplicate analysis: %w", refetchErr)
			}
			s.logger.Info("analysis insert lost the race, returning existing row", "textHash", textHash)
			return &SubmitResult{Analysis: winner, Deduplicated: true}, nil
		}
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	s.logger.Info("analysis created", "analysisID", created.ID)
	return &SubmitResult{Analysis: created, Deduplicated: false}, nil
}

// GetByID はIDで解析結果を取得します
func (s *AnalysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	if id == uuid.Nil {
		return nil, &domain.ValidationError{Field: "id", Rule: "required", Message: "analysis id is required"}
	}
	return s.repo.GetByID(ctx, id)
}

// ListFeatured は注目の解析結果を取得します
func (s *AnalysisService) ListFeatured(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListFeatured(ctx, limit)
}
