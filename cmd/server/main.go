// Package main はWebサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/robinson/internal/auth"
	"github.com/yourusername/robinson/internal/config"
	"github.com/yourusername/robinson/internal/users"
)

func main() {
	// 設定の読み込み（PORT と SESSION_SECRET が無ければここで終了）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// ユーザーストアへの接続
	store, err := newUserStore(cfg)
	if err != nil {
		log.Fatalf("Failed to connect user store: %v", err)
	}

	// ルーターの初期化。パニックは汎用エラーページに変換し、
	// 詳細はサーバーログにのみ残す
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(handleError))

	router.LoadHTMLGlob(filepath.Join(cfg.ViewsDir, "*.html"))

	// セッションストアの設定（クッキー署名鍵は必須）
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// ルーティングの設定
	setupRoutes(router, cfg, store)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newUserStore は Redis バックエンドの資格情報ストアを作成します。
// 起動時に一度だけ疎通確認を行います。
func newUserStore(cfg *config.Config) (users.Store, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return users.NewRedisStore(client), nil
}

// setupRoutes はルートと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, store users.Store) {
	// 誰でも叩けるヘルスチェック
	router.GET("/health", handleHealth)

	manager := auth.NewManager(store)

	// 全ルートでセッションからログイン状態を復元する
	router.Use(manager.CurrentUser())

	router.GET("/", handleIndex)
	router.GET("/login", manager.LoginForm)
	router.POST("/login", manager.Login)
	router.GET("/logout", manager.Logout)

	// 静的ファイル
	router.Static("/public", cfg.PublicDir)

	// 未定義ルートは専用の404ページ（汎用エラーとは区別する）
	router.NoRoute(handleNotFound)
}
