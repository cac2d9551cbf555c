package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/robinson/internal/users"
)

const (
	// SessionCookieName はセッションクッキーの名前です。
	SessionCookieName = "robinson_session"

	sessionKeyUserID = "auth_user_id"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

// FailureMessage はログイン失敗時にフォームへ表示する文言です。
// ストア障害時も同じ文言を使い、原因は区別しません。
const FailureMessage = "Notandanafn eða lykilorð vitlaust."

var maxSessionLifetime = 12 * time.Hour

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(maxSessionLifetime.Seconds())
}

// Manager は認証フローのハンドラーとミドルウェアをまとめた構造体です。
type Manager struct {
	store    users.Store
	verifier *Verifier
}

// NewManager は認証マネージャーを作成します。
func NewManager(store users.Store) *Manager {
	return &Manager{
		store:    store,
		verifier: NewVerifier(store),
	}
}

// serializeUser はセッションに保持する最小限の識別子を書き込みます。
// 秘密情報は一切セッションに入れません。
func serializeUser(session sessions.Session, user *users.User) {
	session.Set(sessionKeyUserID, user.ID)
}

// deserializeUser はセッション内の識別子から完全なレコードを復元します。
// 識別子が無い場合やレコードが削除済みの場合は users.ErrNotFound を返します。
func (m *Manager) deserializeUser(c *gin.Context, session sessions.Session) (*users.User, error) {
	id, ok := session.Get(sessionKeyUserID).(string)
	if !ok || id == "" {
		return nil, users.ErrNotFound
	}
	return m.store.FindByID(c.Request.Context(), id)
}

// CurrentUser は各リクエストでセッションからユーザーを復元するミドルウェアを返します。
// セッション発行後にアカウントが削除されていた場合や、ストア障害時は
// 未ログイン扱いで処理を続けます（リクエストを落としません）。
func (m *Manager) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionKeyUserID) == nil {
			c.Next()
			return
		}

		user, err := m.deserializeUser(c, session)
		if err != nil {
			if !errors.Is(err, users.ErrNotFound) {
				log.Printf("session user lookup failed: %v", err)
			}
			session.Delete(sessionKeyUserID)
			_ = session.Save()
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFromContext は CurrentUser が設定したユーザーを取り出します。
// 未ログインの場合は nil を返します。
func UserFromContext(c *gin.Context) *users.User {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*users.User)
	return user
}

// LoginForm は GET /login のハンドラーです。
// ログイン済みならフォームを表示せずトップへリダイレクトします。
func (m *Manager) LoginForm(c *gin.Context) {
	if UserFromContext(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	session := sessions.Default(c)

	// セッションに溜まった一回限りのメッセージを取り出して消す
	message := ""
	if flashes := session.Flashes(); len(flashes) > 0 {
		parts := make([]string, 0, len(flashes))
		for _, flash := range flashes {
			if s, ok := flash.(string); ok {
				parts = append(parts, s)
			}
		}
		message = strings.Join(parts, ", ")
		if err := session.Save(); err != nil {
			log.Printf("failed to clear session messages: %v", err)
		}
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":    "Innskráning",
		"message":  message,
		"loggedIn": false,
	})
}

// Login は POST /login のハンドラーです。
// 検証に成功したらセッションに識別子を書き込みトップへ、
// 失敗したらメッセージを積んでフォームへリダイレクトします。
func (m *Manager) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := m.verifier.Verify(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			// ストア障害。詳細はサーバーログにのみ残し、
			// クライアントには資格情報エラーと同じ文言を返す
			log.Printf("credential verification failed: %v", err)
		}
		m.failLogin(c)
		return
	}

	session := sessions.Default(c)
	serializeUser(session, user)
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
		m.failLogin(c)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (m *Manager) failLogin(c *gin.Context) {
	session := sessions.Default(c)
	session.AddFlash(FailureMessage)
	if err := session.Save(); err != nil {
		log.Printf("failed to queue login message: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// Logout は GET /logout のハンドラーです。
// セッション破棄の失敗はログに残すだけで、リダイレクトは必ず行います。
func (m *Manager) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Printf("failed to destroy session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}
