package middleware

import (
	"net/http"
	"strings"
)

// methodOverrideField はHTMLフォームが実際のHTTPメソッドを申告するためのフィールド名。
const methodOverrideField = "_method"

// overridableMethods はオーバーライドとして受け入れるメソッド。
// HTMLフォームが直接送信できないメソッドのみを許可する。
var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// NewMethodOverrideMiddleware はPOSTリクエストの_methodフィールドを読み取り、
// 申告されたメソッドにリクエストを書き換えるミドルウェアを返す。
//
// HTMLフォームはGETとPOSTしか送信できないため、編集（PATCH）と削除（DELETE）は
// _methodを付与したPOSTとして送信される。ルーティング前に書き換えることで、
// ハンドラー側は本来のメソッドだけを扱えばよい。
// POST以外のリクエスト、および許可外のメソッド指定は書き換えない。
func NewMethodOverrideMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if m := overrideMethod(r); overridableMethods[m] {
					r.Method = m
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// overrideMethod はクエリパラメータまたはフォームボディから_methodの値を取得する。
func overrideMethod(r *http.Request) string {
	if m := r.URL.Query().Get(methodOverrideField); m != "" {
		return strings.ToUpper(m)
	}
	// ParseFormはボディを消費するが、結果はr.PostFormに残るため
	// 後続ハンドラーのFormValueはそのまま動作する。
	if err := r.ParseForm(); err != nil {
		return ""
	}
	return strings.ToUpper(r.PostFormValue(methodOverrideField))
}
