package model

import (
	"fmt"
	"net/http"
)

// APIError は統一エラーフォーマットを表す。
// ハンドラー層がStatusに従ってHTTPステータスコードへ変換する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, message, system
	Action   string // ユーザー向け対処方法
	Status   int    // 対応するHTTPステータスコード
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeMessageNotFound    = "MESSAGE_NOT_FOUND"
	ErrCodeInvalidInput       = "INVALID_INPUT"
)

// NewDuplicateEmailError は登録済みメールアドレスでのサインアップエラーを生成する。
func NewDuplicateEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
		Status:   http.StatusConflict,
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// アカウントの存在を漏らさないため、メールアドレス未登録とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
		Status:   http.StatusUnauthorized,
	}
}

// NewUnauthenticatedError はログインが必要な操作を未ログインで実行した場合のエラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "この操作にはログインが必要です。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
		Status:   http.StatusUnauthorized,
	}
}

// NewForbiddenError は所有者以外によるメッセージの編集・削除エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このメッセージを操作する権限がありません。",
		Category: "auth",
		Action:   "自分が投稿したメッセージのみ編集・削除できます。",
		Status:   http.StatusForbidden,
	}
}

// NewMessageNotFoundError はメッセージが見つからない場合のエラーを生成する。
func NewMessageNotFoundError(messageID string) *APIError {
	return &APIError{
		Code:     ErrCodeMessageNotFound,
		Message:  fmt.Sprintf("指定されたメッセージが見つかりません: %s", messageID),
		Category: "message",
		Action:   "メッセージは削除された可能性があります。一覧を再読み込みしてください。",
		Status:   http.StatusNotFound,
	}
}

// NewInvalidInputError は入力値の存在チェックに失敗した場合のエラーを生成する。
func NewInvalidInputError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidInput,
		Message:  fmt.Sprintf("%s を入力してください。", field),
		Category: "validation",
		Action:   "すべての項目を入力して再度お試しください。",
		Status:   http.StatusBadRequest,
	}
}
