// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port          string // HTTPサーバーのポート番号
	SessionSecret string // セッションクッキー署名用の秘密鍵
	GinMode       string // Ginの実行モード (debug, release, test)

	// ユーザーストア設定
	RedisURL string // ユーザーストア用Redis接続URL

	// 表示設定
	ViewsDir  string // HTMLテンプレートのディレクトリ
	PublicDir string // 静的ファイルのディレクトリ
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
// PORT と SESSION_SECRET は必須で、欠けている場合はエラーを返します
// （サーバーはソケットを開く前に終了します）。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		Port:          getEnv("PORT", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		GinMode:       getEnv("GIN_MODE", "debug"),

		RedisURL: getEnv("REDIS_URL", "redis://127.0.0.1:6379/0"),

		ViewsDir:  getEnv("VIEWS_DIR", "./views"),
		PublicDir: getEnv("PUBLIC_DIR", "./public"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// ポートとセッション秘密鍵はどのモードでも必須です。
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
