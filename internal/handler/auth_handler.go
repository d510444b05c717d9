package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/chatboard/internal/middleware"
	"github.com/hitoshi/chatboard/internal/model"
	"github.com/hitoshi/chatboard/internal/view"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, email, name, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
	TokenMaxAge  int // セッションCookieの有効期間（秒）
}

// AuthHandler はサインアップ・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	renderer *view.Renderer
	config   AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, renderer *view.Renderer, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		renderer: renderer,
		config:   config,
	}
}

// ShowSignup はサインアップフォームを表示する。
// GET /signup
// ログイン済みの場合はフォームの代わりに案内メッセージを返す。
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(r.Context()) != nil {
		w.Write([]byte("既にサインアップしてログイン済みです。"))
		return
	}
	if err := h.renderer.Render(w, view.PageSignup, nil); err != nil {
		writeError(w, r, err)
	}
}

// Signup はサインアップフォームの送信を処理する。
// POST /signup
// 登録成功はそのままログインとなり、セッションCookieを設定してホームへリダイレクトする。
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	name := r.FormValue("name")
	password := r.FormValue("password")

	_, token, err := h.service.Register(r.Context(), email, name, password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowLogin はログインフォームを表示する。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(r.Context()) != nil {
		w.Write([]byte("既にログイン済みです。"))
		return
	}
	if err := h.renderer.Render(w, view.PageLogin, nil); err != nil {
		writeError(w, r, err)
	}
}

// Login はログインフォームの送信を処理する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, token, err := h.service.Authenticate(r.Context(), email, password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout はセッションCookieをクリアする。
// POST /logout
// トークンはサーバー側に保持していないため、ストア操作は発生しない。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   h.config.CookieSecure,
	})

	if user := middleware.CurrentUser(r.Context()); user != nil {
		slog.Info("user logged out", slog.String("user_id", user.ID))
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// setTokenCookie はセッショントークンをCookieに設定する。
// ページスクリプトから読み取れるよう、HttpOnlyにはしない。
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.TokenMaxAge,
		HttpOnly: false,
		Secure:   h.config.CookieSecure,
	})
}
