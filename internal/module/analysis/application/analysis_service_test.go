package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/application"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	analysistesting "github.com/wakaru-app/wakaru-api/internal/module/analysis/testing"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalysisService_Submit(t *testing.T) {
	t.Run("新規テキストは解析して永続化する", func(t *testing.T) {
		text := "こんにちは"
		created := analysistesting.TestAnalysis(text)

		analyzerCalled := false
		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, got string) (*domain.AnalysisResult, error) {
				analyzerCalled = true
				assert.Equal(t, text, got)
				return &domain.AnalysisResult{
					Data:        created.Data,
					Translation: *created.Translation,
				}, nil
			},
		}
		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, textHash string) (*domain.Analysis, error) {
				assert.Equal(t, domain.TextHash(text), textHash)
				return nil, domain.ErrAnalysisNotFound
			},
			CreateFunc: func(ctx context.Context, originalText, textHash string, data domain.AnalysisData, translation *string) (*domain.Analysis, error) {
				assert.Equal(t, text, originalText)
				assert.Equal(t, domain.TextHash(text), textHash)
				require.NotNil(t, translation)
				return created, nil
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		result, err := service.Submit(context.Background(), text)

		require.NoError(t, err)
		assert.True(t, analyzerCalled)
		assert.False(t, result.Deduplicated)
		assert.Equal(t, created, result.Analysis)
	})

	t.Run("既存テキストはAIを呼ばずに既存行を返す", func(t *testing.T) {
		text := "こんにちは"
		existing := analysistesting.TestAnalysis(text)

		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
				t.Fatal("analyzer must not be called on a cache hit")
				return nil, nil
			},
		}
		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, _ string) (*domain.Analysis, error) {
				return existing, nil
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		result, err := service.Submit(context.Background(), text)

		require.NoError(t, err)
		assert.True(t, result.Deduplicated)
		assert.Equal(t, existing, result.Analysis)
	})

	t.Run("空白だけ異なる投稿は同じ行に解決される", func(t *testing.T) {
		existing := analysistesting.TestAnalysis("こんにちは")

		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, textHash string) (*domain.Analysis, error) {
				assert.Equal(t, domain.TextHash("こんにちは"), textHash)
				return existing, nil
			},
		}

		service := application.NewAnalysisService(repo, &analysistesting.MockAnalyzer{}, newTestLogger())
		result, err := service.Submit(context.Background(), "  こんにちは  ")

		require.NoError(t, err)
		assert.True(t, result.Deduplicated)
	})

	t.Run("検証エラーはリポジトリに触れず返す", func(t *testing.T) {
		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, _ string) (*domain.Analysis, error) {
				t.Fatal("repository must not be called for invalid input")
				return nil, nil
			},
		}

		service := application.NewAnalysisService(repo, &analysistesting.MockAnalyzer{}, newTestLogger())
		_, err := service.Submit(context.Background(), "hello world")

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "japanese_required", validationErr.Rule)
	})

	t.Run("挿入の競争に負けたら勝者の行を返す", func(t *testing.T) {
		text := "こんにちは"
		winner := analysistesting.TestAnalysis(text)

		lookups := 0
		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, _ string) (*domain.Analysis, error) {
				lookups++
				if lookups == 1 {
					return nil, domain.ErrAnalysisNotFound
				}
				return winner, nil
			},
			CreateFunc: func(ctx context.Context, _, _ string, _ domain.AnalysisData, _ *string) (*domain.Analysis, error) {
				return nil, domain.ErrDuplicateHash
			},
		}
		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
				return &domain.AnalysisResult{Data: winner.Data, Translation: "hi"}, nil
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		result, err := service.Submit(context.Background(), text)

		require.NoError(t, err)
		assert.True(t, result.Deduplicated)
		assert.Equal(t, winner, result.Analysis)
		assert.Equal(t, 2, lookups)
	})

	t.Run("競争後の再取得に失敗したらエラーを返す", func(t *testing.T) {
		lookups := 0
		repo := &analysistesting.MockRepository{
			GetByHashFunc: func(ctx context.Context, _ string) (*domain.Analysis, error) {
				lookups++
				if lookups == 1 {
					return nil, domain.ErrAnalysisNotFound
				}
				return nil, domain.ErrAnalysisNotFound
			},
			CreateFunc: func(ctx context.Context, _, _ string, _ domain.AnalysisData, _ *string) (*domain.Analysis, error) {
				return nil, domain.ErrDuplicateHash
			},
		}
		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
				return &domain.AnalysisResult{Translation: "hi"}, nil
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		_, err := service.Submit(context.Background(), "こんにちは")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reconcile duplicate analysis")
	})

	t.Run("解析エラーはそのまま伝播する", func(t *testing.T) {
		analyzeErr := errors.New("model unavailable")
		repo := &analysistesting.MockRepository{
			CreateFunc: func(ctx context.Context, _, _ string, _ domain.AnalysisData, _ *string) (*domain.Analysis, error) {
				t.Fatal("create must not be called when analysis fails")
				return nil, nil
			},
		}
		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
				return nil, analyzeErr
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		_, err := service.Submit(context.Background(), "こんにちは")

		require.ErrorIs(t, err, analyzeErr)
	})

	t.Run("空の翻訳はNULLとして保存する", func(t *testing.T) {
		created := analysistesting.TestAnalysis("こんにちは")
		repo := &analysistesting.MockRepository{
			CreateFunc: func(ctx context.Context, _, _ string, _ domain.AnalysisData, translation *string) (*domain.Analysis, error) {
				assert.Nil(t, translation)
				return created, nil
			},
		}
		analyzer := &analysistesting.MockAnalyzer{
			AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
				return &domain.AnalysisResult{Data: created.Data, Translation: ""}, nil
			},
		}

		service := application.NewAnalysisService(repo, analyzer, newTestLogger())
		_, err := service.Submit(context.Background(), "こんにちは")
		require.NoError(t, err)
	})
}

func TestAnalysisService_GetByID(t *testing.T) {
	t.Run("存在する解析結果を返す", func(t *testing.T) {
		existing := analysistesting.TestAnalysis("こんにちは")
		repo := &analysistesting.MockRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
				assert.Equal(t, existing.ID, id)
				return existing, nil
			},
		}

		service := application.NewAnalysisService(repo, &analysistesting.MockAnalyzer{}, newTestLogger())
		got, err := service.GetByID(context.Background(), existing.ID)

		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("ゼロUUIDは検証エラーにする", func(t *testing.T) {
		service := application.NewAnalysisService(&analysistesting.MockRepository{}, &analysistesting.MockAnalyzer{}, newTestLogger())
		_, err := service.GetByID(context.Background(), uuid.Nil)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestAnalysisService_ListFeatured(t *testing.T) {
	t.Run("非正のlimitはデフォルト値に補正する", func(t *testing.T) {
		repo := &analysistesting.MockRepository{
			ListFeaturedFunc: func(ctx context.Context, limit int) ([]*domain.Analysis, error) {
				assert.Equal(t, 10, limit)
				return nil, nil
			},
		}

		service := application.NewAnalysisService(repo, &analysistesting.MockAnalyzer{}, newTestLogger())
		_, err := service.ListFeatured(context.Background(), 0)
		require.NoError(t, err)
	})
}
