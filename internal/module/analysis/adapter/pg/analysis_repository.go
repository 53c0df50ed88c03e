package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wakaru-app/wakaru-api/internal/infra/postgres"
	"github.com/wakaru-app/wakaru-api/internal/infra/postgres/sqlc"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	"github.com/wakaru-app/wakaru-api/internal/platform/database"
)

// AnalysisRepository は解析結果の永続化アダプターです
type AnalysisRepository struct {
	q sqlc.Querier
}

// NewAnalysisRepository は新しい解析結果リポジトリを作成します
func NewAnalysisRepository(q sqlc.Querier) *AnalysisRepository {
	return &AnalysisRepository{q: q}
}

var _ domain.Repository = (*AnalysisRepository)(nil)

// GetByHash はテキストハッシュで解析結果を取得します
func (r *AnalysisRepository) GetByHash(ctx context.Context, textHash string) (*domain.Analysis, error) {
	row, err := r.q.GetAnalysisByHash(ctx, textHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis by hash: %w", err)
	}

	return convertSQLCAnalysis(row)
}

// GetByID はIDで解析結果を取得します
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	row, err := r.q.GetAnalysisByID(ctx, postgres.UUIDToPgtype(id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return convertSQLCAnalysis(row)
}

// Exists は解析結果の存在を確認します
func (r *AnalysisRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.q.AnalysisExists(ctx, postgres.UUIDToPgtype(id))
	if err != nil {
		return false, fmt.Errorf("failed to check analysis existence: %w", err)
	}
	return exists, nil
}

// ListFeatured は注目の解析結果を新しい順に取得します
func (r *AnalysisRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	rows, err := r.q.ListFeaturedAnalyses(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list featured analyses: %w", err)
	}

	result := make([]*domain.Analysis, 0, len(rows))
	for _, row := range rows {
		analysis, err := convertSQLCAnalysis(row)
		if err != nil {
			return nil, err
		}
		result = append(result, analysis)
	}

	return result, nil
}

// Create は新しい解析結果を永続化します。
// text_hashのユニーク制約違反はErrDuplicateHashとして返します。
func (r *AnalysisRepository) Create(ctx context.Context, originalText, textHash string, data domain.AnalysisData, translation *string) (*domain.Analysis, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis data: %w", err)
	}

	row, err := r.q.CreateAnalysis(ctx, sqlc.CreateAnalysisParams{
		OriginalText: originalText,
		TextHash:     textHash,
		Translation:  postgres.StringPtrToPgtext(translation),
		Data:         payload,
		IsFeatured:   false,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateHash
		}
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	return convertSQLCAnalysis(row)
}

func convertSQLCAnalysis(row sqlc.Analysis) (*domain.Analysis, error) {
	var data domain.AnalysisData
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis data: %w", err)
	}

	return &domain.Analysis{
		ID:           postgres.PgtypeToUUID(row.ID),
		OriginalText: row.OriginalText,
		TextHash:     row.TextHash,
		Translation:  postgres.PgtextToStringPtr(row.Translation),
		Data:         data,
		IsFeatured:   row.IsFeatured,
		CreatedAt:    postgres.PgtypeToTime(row.CreatedAt),
	}, nil
}
