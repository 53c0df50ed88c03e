package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength は投稿テキストの最大文字数
const MaxTextLength = 280

// ValidateText は投稿テキストを検証し、トリム済みテキストを返す。
// 空・文字数超過・日本語文字を含まない場合はValidationErrorを返す。
func ValidateText(rawText string) (string, error) {
	trimmed := strings.TrimSpace(rawText)

	if trimmed == "" {
		return "", &ValidationError{
			Field:   "originalText",
			Rule:    "required",
			Message: "text cannot be empty",
		}
	}

	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return "", &ValidationError{
			Field:   "originalText",
			Rule:    "max_length",
			Message: "text cannot exceed 280 characters",
		}
	}

	if !containsJapanese(trimmed) {
		return "", &ValidationError{
			Field:   "originalText",
			Rule:    "japanese_required",
			Message: "text must contain Japanese characters",
		}
	}

	return trimmed, nil
}

// containsJapanese は日本語の文字（ひらがな・カタカナ・漢字・全角形）を
// 1文字以上含むかどうかを判定する
func containsJapanese(text string) bool {
	for _, r := range text {
		if isJapaneseRune(r) {
			return true
		}
	}
	return false
}

func isJapaneseRune(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // ひらがな
		return true
	case r >= 0x30A0 && r <= 0x30FF: // カタカナ
		return true
	case r >= 0x31F0 && r <= 0x31FF: // カタカナ拡張
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK統合漢字拡張A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK統合漢字
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // 全角・半角形
		return true
	}
	return false
}
