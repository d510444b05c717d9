// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/chatboard/internal/auth"
	"github.com/hitoshi/chatboard/internal/model"
)

// TokenCookieName はセッショントークンを保持するCookieの名前。
// ページスクリプトから読み取れるよう、HttpOnlyではない。
const TokenCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// currentUserContextKey はリクエストコンテキストに現在のユーザーを格納するためのキー。
var currentUserContextKey = contextKey("current_user")

// UserFinder はユーザーの検索に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// NewSessionResolverMiddleware はCookieのセッショントークンを検証し、
// 解決したユーザーをリクエストコンテキストに注入するミドルウェアを返す。
//
// このミドルウェアは全リクエストに対して、他のどのハンドラーよりも先に実行される。
// トークンの不在・署名不正・期限切れ・エンコードされたユーザーの不在は
// いずれもエラーにせず、匿名（未ログイン）として後続処理を続行する。
// ログインが必要かどうかの判定は各ハンドラー側で行う。
func NewSessionResolverMiddleware(userFinder UserFinder, tokenSecret []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得。なければ匿名として続行
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			// 2. 署名と有効期限を検証。失敗は匿名に格下げ
			userID, err := auth.VerifyToken(cookie.Value, tokenSecret)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					slog.Error("unexpected token verification failure",
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			// 3. エンコードされたユーザーIDを解決。見つからなければ匿名
			user, err := userFinder.FindByID(r.Context(), userID)
			if err != nil {
				slog.Error("failed to resolve session user",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			// 4. 解決したユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), currentUserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser はリクエストコンテキストから現在のユーザーを取得する。
// 未ログイン（匿名）の場合はnilを返す。
func CurrentUser(ctx context.Context) *model.User {
	user, ok := ctx.Value(currentUserContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// ContextWithUser はコンテキストにユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, currentUserContextKey, user)
}
