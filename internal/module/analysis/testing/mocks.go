package testing

import (
	"context"

	"github.com/google/uuid"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
)

// MockRepository はテスト用のモックRepositoryです
type MockRepository struct {
	GetByHashFunc    func(ctx context.Context, textHash string) (*domain.Analysis, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	ExistsFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
	ListFeaturedFunc func(ctx context.Context, limit int) ([]*domain.Analysis, error)
	CreateFunc       func(ctx context.Context, originalText, textHash string, data domain.AnalysisData, translation *string) (*domain.Analysis, error)
}

func (m *MockRepository) GetByHash(ctx context.Context, textHash string) (*domain.Analysis, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, textHash)
	}
	return nil, domain.ErrAnalysisNotFound
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrAnalysisNotFound
}

func (m *MockRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if m.ListFeaturedFunc != nil {
		return m.ListFeaturedFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockRepository) Create(ctx context.Context, originalText, textHash string, data domain.AnalysisData, translation *string) (*domain.Analysis, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, originalText, textHash, data, translation)
	}
	return nil, nil
}

// MockAnalyzer はテスト用のモックAnalyzerです
type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, text string) (*domain.AnalysisResult, error)
}

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text)
	}
	return nil, nil
}
