package openrouter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
	"github.com/xeipuuv/gojsonschema"
)

// buildStrictSchema は汎用変換器が出力したスキーマをOpenRouterのstrictモードが
// 受け付ける形へ整形する。全objectノードにadditionalProperties:falseを強制し、
// トップレベルのラッパーを名前付き定義本体へ展開する。
// strictモードは「余分なフィールド禁止」を明示しない限りスキーマ準拠を保証しないため必須。
func buildStrictSchema(definition map[string]any, name string) map[string]any {
	cloned := cloneSchema(definition)
	enforceNoAdditionalProperties(cloned)
	return unwrapRootSchema(cloned, name)
}

// cloneSchema はJSON往復でスキーマを深いコピーする
func cloneSchema(schema map[string]any) map[string]any {
	b, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{}
	}
	var cloned map[string]any
	if err := json.Unmarshal(b, &cloned); err != nil {
		return map[string]any{}
	}
	return cloned
}

// enforceNoAdditionalProperties はネストした定義・配列要素・union分岐を含む
// 全てのobject型ノードにadditionalProperties:falseを再帰的に設定する
func enforceNoAdditionalProperties(node any) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			enforceNoAdditionalProperties(item)
		}
	case map[string]any:
		if t, ok := v["type"].(string); ok && t == "object" {
			v["additionalProperties"] = false
		}
		if props, ok := v["properties"].(map[string]any); ok {
			for _, p := range props {
				enforceNoAdditionalProperties(p)
			}
		}
		if items, ok := v["items"]; ok {
			enforceNoAdditionalProperties(items)
		}
		for _, key := range []string{"anyOf", "allOf", "oneOf"} {
			if branches, ok := v[key].([]any); ok {
				enforceNoAdditionalProperties(branches)
			}
		}
		for _, key := range []string{"definitions", "$defs"} {
			if defs, ok := v[key].(map[string]any); ok {
				for _, d := range defs {
					enforceNoAdditionalProperties(d)
				}
			}
		}
	}
}

// unwrapRootSchema は汎用変換が生成するトップレベルラッパー
// （definitions/$defs + $ref）を実際の名前付き定義へ展開する
func unwrapRootSchema(schema map[string]any, name string) map[string]any {
	root := schema

	defs := namedDefinitions(schema)
	if defs != nil {
		target := name
		if _, ok := defs[target].(map[string]any); !ok {
			if ref, ok := schema["$ref"].(string); ok {
				target = ref[strings.LastIndex(ref, "/")+1:]
			}
		}
		if named, ok := defs[target].(map[string]any); ok {
			root = named
			delete(defs, target)
			// 残りの定義は "#/$defs/..." 参照の解決先として新しいルートに残す
			if len(defs) > 0 {
				root["$defs"] = defs
			}
		}
	}

	delete(root, "$schema")
	delete(root, "$id")
	if _, ok := root["type"]; !ok {
		root["type"] = "object"
	}

	return root
}

func namedDefinitions(schema map[string]any) map[string]any {
	if defs, ok := schema["$defs"].(map[string]any); ok {
		return defs
	}
	if defs, ok := schema["definitions"].(map[string]any); ok {
		return defs
	}
	return nil
}

// validateStructured はレスポンス本文をJSONとして解析し、スキーマに対して検証する。
// どちらの失敗もParseErrorになり、黙って劣化した結果を返すことはない。
func validateStructured(schema map[string]any, content string) (json.RawMessage, error) {
	var payload any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, &domain.ParseError{Message: "structured output is not valid JSON"}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewStringLoader(content),
	)
	if err != nil {
		return nil, &domain.ParseError{Message: fmt.Sprintf("schema validation failed: %v", err)}
	}
	if !result.Valid() {
		return nil, &domain.ParseError{Message: fmt.Sprintf("structured output does not match schema: %s", firstViolation(result))}
	}

	return json.RawMessage(content), nil
}

func firstViolation(result *gojsonschema.Result) string {
	for _, desc := range result.Errors() {
		return desc.String()
	}
	return "unknown violation"
}
