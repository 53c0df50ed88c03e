package domain

import (
	"time"

	"github.com/google/uuid"
)

// JLPTLevel は日本語能力試験の難易度レベル（N5が最も易しくN1が最も難しい）
type JLPTLevel string

const (
	JLPTLevelN5 JLPTLevel = "N5"
	JLPTLevelN4 JLPTLevel = "N4"
	JLPTLevelN3 JLPTLevel = "N3"
	JLPTLevelN2 JLPTLevel = "N2"
	JLPTLevelN1 JLPTLevel = "N1"
)

// PartOfSpeech は品詞タグ（閉じた集合）
type PartOfSpeech string

const (
	POSNoun         PartOfSpeech = "Noun"
	POSVerb         PartOfSpeech = "Verb"
	POSAdjective    PartOfSpeech = "Adjective"
	POSAdverb       PartOfSpeech = "Adverb"
	POSParticle     PartOfSpeech = "Particle"
	POSConjunction  PartOfSpeech = "Conjunction"
	POSInterjection PartOfSpeech = "Interjection"
	POSPronoun      PartOfSpeech = "Pronoun"
	POSDeterminer   PartOfSpeech = "Determiner"
	POSPreposition  PartOfSpeech = "Preposition"
	POSAuxiliary    PartOfSpeech = "Auxiliary"
	POSOther        PartOfSpeech = "Other"
)

// Token は解析結果内の形態素単位
// 親のAnalysisが所有し、独立したライフサイクルを持たない
type Token struct {
	Surface        string       `json:"surface"`
	DictionaryForm *string      `json:"dictionaryForm"` // 助詞など純粋な文法要素ではnull
	POS            PartOfSpeech `json:"pos"`
	Reading        string       `json:"reading"`
	Definition     string       `json:"definition"`
}

// AnalysisData はAIが生成した構造化ペイロード
type AnalysisData struct {
	Difficulty JLPTLevel `json:"difficulty"`
	Romaji     string    `json:"romaji"`
	Tokens     []Token   `json:"tokens"`
}

// Analysis は解析結果エンティティ。作成後は不変で、
// text_hashのユニーク制約により正規化テキストごとに高々1行しか存在しない。
type Analysis struct {
	ID           uuid.UUID    `json:"id"`
	OriginalText string       `json:"originalText"`
	TextHash     string       `json:"-"`
	Translation  *string      `json:"translation"`
	Data         AnalysisData `json:"data"`
	IsFeatured   bool         `json:"isFeatured"`
	CreatedAt    time.Time    `json:"createdAt"`
}
