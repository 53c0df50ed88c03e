package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	"github.com/wakaru-app/wakaru-api/internal/module/saveditem/domain"
)

const (
	// DefaultPageSize は一覧取得の既定のページサイズ
	DefaultPageSize = 20

	// MaxPageSize はページサイズの上限
	MaxPageSize = 50
)

// analysisChecker は保存対象の解析結果の存在確認に使う最小ポート
type analysisChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SavedItemService はユーザーごとの保存アイテムを管理するサービスです
type SavedItemService struct {
	repo     domain.Repository
	analyses analysisChecker
	logger   *slog.Logger
}

// NewSavedItemService は新しいSavedItemServiceを作成します
func NewSavedItemService(repo domain.Repository, analyses analysisChecker, logger *slog.Logger) *SavedItemService {
	return &SavedItemService{
		repo:     repo,
		analyses: analyses,
		logger:   logger,
	}
}

// Create は解析結果をユーザーの保存リストへ追加します。
// 解析結果が存在しない場合はErrAnalysisNotFound、
// 既に保存済みの場合はErrAlreadySavedを返します。
func (s *SavedItemService) Create(ctx context.Context, userID, analysisID uuid.UUID) (*domain.SavedItem, error) {
	if analysisID == uuid.Nil {
		return nil, &analysisdomain.ValidationError{
			Field:   "analysisId",
			Rule:    "required",
			Message: "analysis id is required",
		}
	}

	exists, err := s.analyses.Exists(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to check analysis existence: %w", err)
	}
	if !exists {
		return nil, analysisdomain.ErrAnalysisNotFound
	}

	item, err := s.repo.Create(ctx, userID, analysisID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("saved item created", "savedItemID", item.ID, "analysisID", analysisID)
	return item, nil
}

// Delete はユーザー自身の保存アイテムを削除します。
// 他人のアイテムや存在しないIDはErrSavedItemNotFoundになります。
func (s *SavedItemService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil {
		return domain.ErrSavedItemNotFound
	}
	return s.repo.Delete(ctx, id, userID)
}

// FindAll はユーザーの保存アイテムを検索・ページングして返します。
// 不正なページ・ソート指定は既定値に補正し、エラーにはしません。
func (s *SavedItemService) FindAll(ctx context.Context, userID uuid.UUID, query domain.Query) (*domain.Page, error) {
	normalized := normalizeQuery(query)

	total, err := s.repo.Count(ctx, userID, normalized.Q)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, userID, normalized)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Items:    items,
		Page:     normalized.Page,
		PageSize: normalized.PageSize,
		Total:    total,
	}, nil
}

// IsSaved はユーザーが解析結果を保存済みかどうかを返します
func (s *SavedItemService) IsSaved(ctx context.Context, userID, analysisID uuid.UUID) (bool, error) {
	return s.repo.IsSaved(ctx, userID, analysisID)
}

// GetAnalysisForUser はユーザーが保存している解析結果を取得します
func (s *SavedItemService) GetAnalysisForUser(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error) {
	if analysisID == uuid.Nil {
		return nil, analysisdomain.ErrAnalysisNotFound
	}
	return s.repo.GetSavedAnalysis(ctx, analysisID, userID)
}

func normalizeQuery(query domain.Query) domain.Query {
	query.Q = strings.TrimSpace(query.Q)

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = DefaultPageSize
	}
	if query.PageSize > MaxPageSize {
		query.PageSize = MaxPageSize
	}

	if query.Sort != domain.SortBySavedAt && query.Sort != domain.SortByOriginalText {
		query.Sort = domain.SortBySavedAt
	}
	if query.Order != domain.OrderAsc && query.Order != domain.OrderDesc {
		query.Order = domain.OrderDesc
	}

	return query
}
