// Package auth は資格情報の検証とセッションによるログイン状態の管理を提供します。
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/robinson/internal/users"
)

// ErrInvalidCredentials はユーザー名またはパスワードが正しくないことを示します。
// どちらが間違っていたかは意図的に区別しません。
var ErrInvalidCredentials = errors.New("invalid username or password")

// Verifier はユーザー名とパスワードの組を資格情報ストアと照合します。
type Verifier struct {
	store   users.Store
	compare func(password string, user *users.User) bool
}

// NewVerifier は Verifier を作成します。
func NewVerifier(store users.Store) *Verifier {
	return &Verifier{
		store:   store,
		compare: users.ComparePasswords,
	}
}

// Verify はユーザー名とパスワードを検証します。
//   - 一致した場合はユーザーレコードを返します
//   - ユーザーが存在しない、またはパスワード不一致の場合は ErrInvalidCredentials を返します
//   - ストア障害は ErrInvalidCredentials とは区別できるエラーとして返します
//
// 存在しないユーザーに対してパスワード比較は行いません。
func (v *Verifier) Verify(ctx context.Context, username, password string) (*users.User, error) {
	user, err := v.store.FindByUsername(ctx, username)
	if errors.Is(err, users.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}

	if !v.compare(password, user) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
