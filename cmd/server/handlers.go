package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/robinson/internal/auth"
)

// handleIndex は GET / のハンドラーです。
// ログイン状態に応じた表示用データをテンプレートに渡します。
func handleIndex(c *gin.Context) {
	user := auth.UserFromContext(c)
	profile := user.Profile()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    "Robinson skýrsla",
		"loggedIn": user != nil,
		"username": profile.Username,
		"admin":    profile.Admin,
	})
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "robinson-web",
		"version": "0.1.0",
	})
}

// handleNotFound は未定義ルートのハンドラーです。
func handleNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"title": "Síða fannst ekki",
	})
}

// handleError は回復したパニックを汎用エラーページとして返します。
// スタックトレース等の内部情報はクライアントに出しません。
func handleError(c *gin.Context, err any) {
	log.Printf("panic recovered: %v", err)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"title": "Villa kom upp",
	})
}
