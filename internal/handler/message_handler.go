package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/chatboard/internal/middleware"
	"github.com/hitoshi/chatboard/internal/model"
	"github.com/hitoshi/chatboard/internal/view"
)

// MessageServiceInterface はメッセージハンドラーが必要とするサービスインターフェース。
type MessageServiceInterface interface {
	List(ctx context.Context) ([]model.MessageWithOwner, error)
	Create(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error)
	GetForEdit(ctx context.Context, messageID, requesterID string) (*model.Message, error)
	Edit(ctx context.Context, messageID, newBody, requesterID string) error
	Delete(ctx context.Context, messageID, requesterID string) error
}

// MessageHandler はメッセージCRUDのHTTPハンドラー。
type MessageHandler struct {
	service  MessageServiceInterface
	renderer *view.Renderer
}

// NewMessageHandler はMessageHandlerを生成する。
func NewMessageHandler(service MessageServiceInterface, renderer *view.Renderer) *MessageHandler {
	return &MessageHandler{
		service:  service,
		renderer: renderer,
	}
}

// homePageData はホーム画面のテンプレートデータ。
type homePageData struct {
	CurrentUser *model.User
	Messages    []model.MessageWithOwner
}

// editPageData は編集フォームのテンプレートデータ。
type editPageData struct {
	Message *model.Message
}

// Home は全メッセージを投稿者情報付きで一覧表示する。
// GET /
// 認証は不要で、未ログインでも閲覧できる。
func (h *MessageHandler) Home(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := homePageData{
		CurrentUser: middleware.CurrentUser(r.Context()),
		Messages:    messages,
	}
	if err := h.renderer.Render(w, view.PageHome, data); err != nil {
		writeError(w, r, err)
	}
}

// ShowNewChat はメッセージ作成フォームを表示する。
// GET /newchat
// 未ログインの場合はUNAUTHENTICATEDエラーとなる。
func (h *MessageHandler) ShowNewChat(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(r.Context()) == nil {
		writeError(w, r, model.NewUnauthenticatedError())
		return
	}
	if err := h.renderer.Render(w, view.PageNewChat, nil); err != nil {
		writeError(w, r, err)
	}
}

// SubmitChat は新規メッセージを作成する。
// POST /submitchat
// 作成されたメッセージの所有者は現在のセッションのユーザーとなる。
func (h *MessageHandler) SubmitChat(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Create(
		r.Context(),
		r.FormValue("from"),
		r.FormValue("to"),
		r.FormValue("msg"),
		currentUserID(r),
	); err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowEdit はメッセージ編集フォームを表示する。
// GET /edit/{id}
// 所有者のみが編集フォームを開ける。
func (h *MessageHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.GetForEdit(r.Context(), chi.URLParam(r, "id"), currentUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.renderer.Render(w, view.PageEdit, editPageData{Message: msg}); err != nil {
		writeError(w, r, err)
	}
}

// SubmitEdit はメッセージの本文を更新する。
// PATCH /edited/{id}
// フォームからは_method=PATCH付きのPOSTとして届き、ミドルウェアが書き換える。
func (h *MessageHandler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Edit(r.Context(), id, r.FormValue("msg"), currentUserID(r)); err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete はメッセージを削除する。
// DELETE /delete/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, currentUserID(r)); err != nil {
		writeError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// currentUserID はリクエストコンテキストから現在のユーザーIDを取得する。
// 未ログインの場合は空文字列を返し、ログイン要否の判定はサービス層が行う。
func currentUserID(r *http.Request) string {
	if user := middleware.CurrentUser(r.Context()); user != nil {
		return user.ID
	}
	return ""
}
