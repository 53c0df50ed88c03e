package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	completiondomain "github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
)

const (
	// schemaName は構造化出力スキーマの名前
	schemaName = "japanese_text_analysis"

	// defaultTemperature は解析の再現性を優先した低めの温度
	defaultTemperature = 0.2

	// defaultMaxTokens は280文字入力のトークン列に十分な出力上限
	defaultMaxTokens = 4_000
)

// Analyzer は構造化補完クライアントで日本語テキストを解析するアダプター
type Analyzer struct {
	completer completiondomain.Completer
	model     string
	schema    completiondomain.Schema
	logger    *slog.Logger
}

// NewAnalyzer は新しいAnalyzerを作成する。スキーマのリフレクションは構築時に一度だけ行う。
func NewAnalyzer(completer completiondomain.Completer, model string, logger *slog.Logger) (*Analyzer, error) {
	definition, err := payloadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis schema: %w", err)
	}

	return &Analyzer{
		completer: completer,
		model:     model,
		schema: completiondomain.Schema{
			Name:       schemaName,
			Definition: definition,
		},
		logger: logger,
	}, nil
}

var _ domain.Analyzer = (*Analyzer)(nil)

// Analyze はテキストを解析し、構造化された形態素分解・翻訳・難易度を返す
func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	temperature := defaultTemperature
	maxTokens := defaultMaxTokens

	messages := []completiondomain.Message{
		{Role: completiondomain.RoleSystem, Content: systemPrompt},
		{Role: completiondomain.RoleUser, Content: text},
	}

	result, err := a.completer.Complete(ctx, messages, completiondomain.Options{
		Model:       a.model,
		Schema:      &a.schema,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, err
	}

	var payload analysisPayload
	if err := json.Unmarshal(result.Structured, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
	}

	if result.Usage != nil {
		a.logger.Debug("analysis completion finished",
			"model", result.Model,
			"totalTokens", result.Usage.TotalTokens,
		)
	}

	return mapPayload(payload)
}

func mapPayload(payload analysisPayload) (*domain.AnalysisResult, error) {
	if len(payload.Tokens) == 0 {
		return nil, fmt.Errorf("analysis payload has no tokens")
	}

	tokens := make([]domain.Token, 0, len(payload.Tokens))
	for _, t := range payload.Tokens {
		tokens = append(tokens, domain.Token{
			Surface:        t.Surface,
			DictionaryForm: t.DictionaryForm,
			POS:            domain.PartOfSpeech(t.POS),
			Reading:        t.Reading,
			Definition:     t.Definition,
		})
	}

	return &domain.AnalysisResult{
		Data: domain.AnalysisData{
			Difficulty: domain.JLPTLevel(payload.Difficulty),
			Romaji:     payload.Romaji,
			Tokens:     tokens,
		},
		Translation: payload.Translation,
	}, nil
}
