package testing

import (
	"context"
	"time"

	"github.com/google/uuid"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	"github.com/wakaru-app/wakaru-api/internal/module/saveditem/domain"
)

// MockRepository はテスト用のモックRepositoryです
type MockRepository struct {
	CreateFunc           func(ctx context.Context, userID, analysisID uuid.UUID) (*domain.SavedItem, error)
	DeleteFunc           func(ctx context.Context, id, userID uuid.UUID) error
	IsSavedFunc          func(ctx context.Context, userID, analysisID uuid.UUID) (bool, error)
	ListFunc             func(ctx context.Context, userID uuid.UUID, query domain.Query) ([]domain.SavedItemWithAnalysis, error)
	CountFunc            func(ctx context.Context, userID uuid.UUID, q string) (int64, error)
	GetSavedAnalysisFunc func(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error)
}

func (m *MockRepository) Create(ctx context.Context, userID, analysisID uuid.UUID) (*domain.SavedItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, analysisID)
	}
	return TestSavedItem(userID, analysisID), nil
}

func (m *MockRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockRepository) IsSaved(ctx context.Context, userID, analysisID uuid.UUID) (bool, error) {
	if m.IsSavedFunc != nil {
		return m.IsSavedFunc(ctx, userID, analysisID)
	}
	return false, nil
}

func (m *MockRepository) List(ctx context.Context, userID uuid.UUID, query domain.Query) ([]domain.SavedItemWithAnalysis, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, query)
	}
	return nil, nil
}

func (m *MockRepository) Count(ctx context.Context, userID uuid.UUID, q string) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, q)
	}
	return 0, nil
}

func (m *MockRepository) GetSavedAnalysis(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error) {
	if m.GetSavedAnalysisFunc != nil {
		return m.GetSavedAnalysisFunc(ctx, analysisID, userID)
	}
	return nil, analysisdomain.ErrAnalysisNotFound
}

// MockAnalysisChecker はテスト用の解析結果存在確認モックです
type MockAnalysisChecker struct {
	ExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockAnalysisChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

// TestSavedItem はテスト用のSavedItemを生成します
func TestSavedItem(userID, analysisID uuid.UUID) *domain.SavedItem {
	return &domain.SavedItem{
		ID:         uuid.New(),
		UserID:     userID,
		AnalysisID: analysisID,
		SavedAt:    time.Now(),
	}
}
