package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrUnauthenticated はリクエストに認証済みユーザーが紐付いていない場合のエラー
var ErrUnauthenticated = errors.New("request is not authenticated")

// User は認証済みユーザー
type User struct {
	ID    uuid.UUID
	Email string
}

// Identity はリクエストから認証済みユーザーを解決するポート。
// 認証自体は外部の認証基盤が行い、このサービスは結果を信頼して消費するだけ。
type Identity interface {
	CurrentUser(r *http.Request) (*User, error)
}

// ヘッダー名（ゲートウェイが検証済みのユーザー情報を注入する）
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
)

// HeaderIdentity はゲートウェイが注入したヘッダーからユーザーを解決するアダプター
type HeaderIdentity struct{}

// NewHeaderIdentity は新しいHeaderIdentityを作成します
func NewHeaderIdentity() *HeaderIdentity {
	return &HeaderIdentity{}
}

var _ Identity = (*HeaderIdentity)(nil)

// CurrentUser はX-User-Idヘッダーからユーザーを解決する
func (i *HeaderIdentity) CurrentUser(r *http.Request) (*User, error) {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return &User{
		ID:    id,
		Email: r.Header.Get(headerUserEmail),
	}, nil
}
