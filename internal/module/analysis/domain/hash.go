package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// TextHash は前後の空白を除去したテキストのSHA-256ハッシュを16進文字列で返す。
// 空白だけが異なる投稿が重複したAnalysis行を作らないよう、
// 重複排除キーはトリム済みテキストから計算する。
func TextHash(text string) string {
	normalized := strings.TrimSpace(text)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(normalized)))
}
