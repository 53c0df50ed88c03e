package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

const systemPrompt = `You are a Japanese language analysis engine. Given Japanese text, return:
- translation: a natural English translation of the whole text
- difficulty: the overall JLPT difficulty, one of N5, N4, N3, N2, N1
- romaji: a Hepburn romanization of the whole text
- tokens: the morphological tokens in order of appearance, where each token has:
  - surface: the token exactly as it appears in the text
  - dictionaryForm: the dictionary (base) form, or null for pure grammatical particles
  - pos: one of Noun, Verb, Adjective, Adverb, Particle, Conjunction, Interjection, Pronoun, Determiner, Preposition, Auxiliary, Other
  - reading: the reading in hiragana
  - definition: a short English definition of the token in context
Respond with JSON only.`

// analysisPayload は構造化出力スキーマの元になる型
type analysisPayload struct {
	Translation string         `json:"translation"`
	Difficulty  string         `json:"difficulty" jsonschema:"enum=N5,enum=N4,enum=N3,enum=N2,enum=N1"`
	Romaji      string         `json:"romaji"`
	Tokens      []tokenPayload `json:"tokens"`
}

type tokenPayload struct {
	Surface        string  `json:"surface"`
	DictionaryForm *string `json:"dictionaryForm"`
	POS            string  `json:"pos" jsonschema:"enum=Noun,enum=Verb,enum=Adjective,enum=Adverb,enum=Particle,enum=Conjunction,enum=Interjection,enum=Pronoun,enum=Determiner,enum=Preposition,enum=Auxiliary,enum=Other"`
	Reading        string  `json:"reading"`
	Definition     string  `json:"definition"`
}

// payloadSchema はanalysisPayloadをJSONスキーママップへリフレクションする
func payloadSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&analysisPayload{})
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reflected schema: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reflected schema: %w", err)
	}

	patchNullableDictionaryForm(m)

	return m, nil
}

// patchNullableDictionaryForm はdictionaryFormの型を ["string","null"] に差し替える。
// invopopは*stringを単なる"string"として出力するが、strictモードでnullを
// 返せるようにするには型レベルでnullを許可する必要がある。
func patchNullableDictionaryForm(schema map[string]any) {
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return
	}
	tokens, ok := props["tokens"].(map[string]any)
	if !ok {
		return
	}
	items, ok := tokens["items"].(map[string]any)
	if !ok {
		return
	}
	tokenProps, ok := items["properties"].(map[string]any)
	if !ok {
		return
	}
	if df, ok := tokenProps["dictionaryForm"].(map[string]any); ok {
		df["type"] = []any{"string", "null"}
	}
}
