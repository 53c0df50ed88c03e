package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wakaru-app/wakaru-api/internal/infra/postgres"
	"github.com/wakaru-app/wakaru-api/internal/infra/postgres/sqlc"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	"github.com/wakaru-app/wakaru-api/internal/module/saveditem/domain"
	"github.com/wakaru-app/wakaru-api/internal/platform/database"
)

// ドメインのソート識別子からSQLのカラム名への対応
var sortColumns = map[string]string{
	domain.SortBySavedAt:      "saved_at",
	domain.SortByOriginalText: "original_text",
}

// SavedItemRepository は保存アイテムの永続化アダプターです
type SavedItemRepository struct {
	q sqlc.Querier
}

// NewSavedItemRepository は新しい保存アイテムリポジトリを作成します
func NewSavedItemRepository(q sqlc.Querier) *SavedItemRepository {
	return &SavedItemRepository{q: q}
}

var _ domain.Repository = (*SavedItemRepository)(nil)

// Create は保存アイテムを作成します。
// (user_id, analysis_id) のユニーク制約違反はErrAlreadySavedとして返します。
func (r *SavedItemRepository) Create(ctx context.Context, userID, analysisID uuid.UUID) (*domain.SavedItem, error) {
	row, err := r.q.CreateSavedItem(ctx, sqlc.CreateSavedItemParams{
		UserID:     postgres.UUIDToPgtype(userID),
		AnalysisID: postgres.UUIDToPgtype(analysisID),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadySaved
		}
		return nil, fmt.Errorf("failed to create saved item: %w", err)
	}

	return convertSQLCSavedItem(row), nil
}

// Delete は保存アイテムを削除します。所有者の絞り込みは削除クエリ自体が行うため、
// 存在しないIDと他人のアイテムはどちらも削除件数0＝ErrSavedItemNotFoundになります。
func (r *SavedItemRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	affected, err := r.q.DeleteSavedItem(ctx, sqlc.DeleteSavedItemParams{
		ID:     postgres.UUIDToPgtype(id),
		UserID: postgres.UUIDToPgtype(userID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete saved item: %w", err)
	}
	if affected == 0 {
		return domain.ErrSavedItemNotFound
	}
	return nil
}

// IsSaved はユーザーが解析結果を保存済みかどうかを返します
func (r *SavedItemRepository) IsSaved(ctx context.Context, userID, analysisID uuid.UUID) (bool, error) {
	saved, err := r.q.IsAnalysisSaved(ctx, sqlc.IsAnalysisSavedParams{
		UserID:     postgres.UUIDToPgtype(userID),
		AnalysisID: postgres.UUIDToPgtype(analysisID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check saved state: %w", err)
	}
	return saved, nil
}

// List はユーザーの保存アイテムを解析結果ごと取得します
func (r *SavedItemRepository) List(ctx context.Context, userID uuid.UUID, query domain.Query) ([]domain.SavedItemWithAnalysis, error) {
	sortBy, ok := sortColumns[query.Sort]
	if !ok {
		sortBy = "saved_at"
	}
	sortOrder := query.Order
	if sortOrder != domain.OrderAsc && sortOrder != domain.OrderDesc {
		sortOrder = domain.OrderDesc
	}

	offset := (query.Page - 1) * query.PageSize

	rows, err := r.q.ListSavedItems(ctx, sqlc.ListSavedItemsParams{
		UserID:    postgres.UUIDToPgtype(userID),
		Query:     postgres.StringToNullableText(query.Q),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		RowLimit:  int32(query.PageSize),
		RowOffset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list saved items: %w", err)
	}

	result := make([]domain.SavedItemWithAnalysis, 0, len(rows))
	for _, row := range rows {
		item, err := convertSQLCSavedItemRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}

	return result, nil
}

// Count は検索条件に一致する保存アイテムの総数を返します
func (r *SavedItemRepository) Count(ctx context.Context, userID uuid.UUID, q string) (int64, error) {
	total, err := r.q.CountSavedItems(ctx, sqlc.CountSavedItemsParams{
		UserID: postgres.UUIDToPgtype(userID),
		Query:  postgres.StringToNullableText(q),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count saved items: %w", err)
	}
	return total, nil
}

// GetSavedAnalysis はユーザーが保存している解析結果を取得します。
// 解析結果が存在しない場合と保存していない場合はどちらもErrAnalysisNotFoundです。
func (r *SavedItemRepository) GetSavedAnalysis(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error) {
	row, err := r.q.GetSavedAnalysis(ctx, sqlc.GetSavedAnalysisParams{
		ID:     postgres.UUIDToPgtype(analysisID),
		UserID: postgres.UUIDToPgtype(userID),
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, analysisdomain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get saved analysis: %w", err)
	}

	return convertSQLCAnalysis(row)
}

func convertSQLCSavedItem(row sqlc.UserSavedItem) *domain.SavedItem {
	return &domain.SavedItem{
		ID:         postgres.PgtypeToUUID(row.ID),
		UserID:     postgres.PgtypeToUUID(row.UserID),
		AnalysisID: postgres.PgtypeToUUID(row.AnalysisID),
		SavedAt:    postgres.PgtypeToTime(row.SavedAt),
	}
}

func convertSQLCSavedItemRow(row sqlc.ListSavedItemsRow) (*domain.SavedItemWithAnalysis, error) {
	var data analysisdomain.AnalysisData
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis data: %w", err)
	}

	return &domain.SavedItemWithAnalysis{
		SavedItem: domain.SavedItem{
			ID:         postgres.PgtypeToUUID(row.ID),
			UserID:     postgres.PgtypeToUUID(row.UserID),
			AnalysisID: postgres.PgtypeToUUID(row.AnalysisID),
			SavedAt:    postgres.PgtypeToTime(row.SavedAt),
		},
		Analysis: analysisdomain.Analysis{
			ID:           postgres.PgtypeToUUID(row.AnalysisID),
			OriginalText: row.OriginalText,
			TextHash:     row.TextHash,
			Translation:  postgres.PgtextToStringPtr(row.Translation),
			Data:         data,
			IsFeatured:   row.IsFeatured,
			CreatedAt:    postgres.PgtypeToTime(row.CreatedAt),
		},
	}, nil
}

func convertSQLCAnalysis(row sqlc.Analysis) (*analysisdomain.Analysis, error) {
	var data analysisdomain.AnalysisData
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis data: %w", err)
	}

	return &analysisdomain.Analysis{
		ID:           postgres.PgtypeToUUID(row.ID),
		OriginalText: row.OriginalText,
		TextHash:     row.TextHash,
		Translation:  postgres.PgtextToStringPtr(row.Translation),
		Data:         data,
		IsFeatured:   row.IsFeatured,
		CreatedAt:    postgres.PgtypeToTime(row.CreatedAt),
	}, nil
}
