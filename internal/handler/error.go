// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/chatboard/internal/model"
)

// notFoundBody は未定義ルートに対する固定メッセージ。
const notFoundBody = "ページが見つかりません。"

// internalErrorBody は想定外エラーに対する固定メッセージ。詳細はログのみに記録する。
const internalErrorBody = "問題が発生しました。"

// writeError はエラーをHTTPレスポンスに変換する統一エラーレスポンダー。
// APIErrorは宣言されたステータスコードとメッセージをそのまま出力し、
// それ以外のエラーはログに記録したうえで一般的な500レスポンスに変換する。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		http.Error(w, apiErr.Message, apiErr.Status)
		return
	}

	slog.Error("unhandled error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, internalErrorBody, http.StatusInternalServerError)
}

// NotFound は未定義ルートに対する404ハンドラー。
func NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, notFoundBody, http.StatusNotFound)
}
