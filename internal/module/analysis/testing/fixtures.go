package testing

import (
	"time"

	"github.com/google/uuid"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
)

// TestAnalysis はテスト用のAnalysisを生成します
func TestAnalysis(originalText string) *domain.Analysis {
	translation := "test translation"
	dictForm := "テスト"
	return &domain.Analysis{
		ID:           uuid.New(),
		OriginalText: originalText,
		TextHash:     domain.TextHash(originalText),
		Translation:  &translation,
		Data: domain.AnalysisData{
			Difficulty: domain.JLPTLevelN5,
			Romaji:     "tesuto",
			Tokens: []domain.Token{
				{
					Surface:        originalText,
					DictionaryForm: &dictForm,
					POS:            domain.POSNoun,
					Reading:        "てすと",
					Definition:     "test",
				},
			},
		},
		CreatedAt: time.Now(),
	}
}
