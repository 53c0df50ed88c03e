package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantRule string
	}{
		{
			name:  "日本語テキストはそのまま通る",
			input: "こんにちは",
			want:  "こんにちは",
		},
		{
			name:  "前後の空白はトリムされる",
			input: "  こんにちは  ",
			want:  "こんにちは",
		},
		{
			name:  "漢字のみでも日本語として扱う",
			input: "日本語",
			want:  "日本語",
		},
		{
			name:  "英数字混じりでも日本語が1文字あれば通る",
			input: "TOKYO 2020 五輪",
			want:  "TOKYO 2020 五輪",
		},
		{
			name:  "ちょうど280文字は通る",
			input: strings.Repeat("あ", 280),
			want:  strings.Repeat("あ", 280),
		},
		{
			name:     "空文字列は拒否する",
			input:    "",
			wantRule: "required",
		},
		{
			name:     "空白のみは拒否する",
			input:    "   \t\n  ",
			wantRule: "required",
		},
		{
			name:     "281文字は拒否する",
			input:    strings.Repeat("あ", 281),
			wantRule: "max_length",
		},
		{
			name:     "日本語を含まないテキストは拒否する",
			input:    "hello world",
			wantRule: "japanese_required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ValidateText(tt.input)

			if tt.wantRule != "" {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "originalText", validationErr.Field)
				assert.Equal(t, tt.wantRule, validationErr.Rule)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateText_LengthCountsRunes(t *testing.T) {
	// バイト数ではなく文字数で判定する。280個のマルチバイト文字は
	// 840バイトあるが文字数としては上限内。
	input := strings.Repeat("語", 280)
	require.Greater(t, len(input), domain.MaxTextLength)

	got, err := domain.ValidateText(input)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
