// Package users はユーザーレコードの定義と資格情報ストアを提供します。
package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound は該当するユーザーレコードが存在しないことを示します。
var ErrNotFound = errors.New("user not found")

// User は登録済みアカウントを表します。
// このアプリケーションからは読み取り専用で、作成・更新は
// cmd/seed のプロビジョニングで行います。
type User struct {
	ID           string `json:"id"`           // 不変の一意識別子（UUID）
	Username     string `json:"username"`     // ログインキー（一意）
	PasswordHash string `json:"passwordHash"` // bcryptでハッシュ化されたパスワード
	Admin        bool   `json:"admin"`        // 管理者フラグ
}

// Profile はテンプレートに渡す表示用の射影です。
// 秘密情報（パスワードハッシュ）は含まれません。
type Profile struct {
	Username string
	Admin    bool
}

// Profile は表示用の射影を返します。nil レシーバーはゼロ値を返します。
func (u *User) Profile() Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{Username: u.Username, Admin: u.Admin}
}

// Store は資格情報ストアの読み取りインターフェースです。
type Store interface {
	// FindByUsername はユーザー名でレコードを検索します。
	// 該当がない場合は ErrNotFound を返します。
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID は識別子でレコードを検索します。
	// 該当がない場合は ErrNotFound を返します。
	FindByID(ctx context.Context, id string) (*User, error)
}

// ComparePasswords は平文パスワードを保存済みハッシュと比較します。
// bcrypt の固定ワークファクターにより、比較コストは一致位置に依存しません。
func ComparePasswords(password string, user *User) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// HashPassword は保存用の bcrypt ハッシュを生成します。
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
