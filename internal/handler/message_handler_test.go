package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/chatboard/internal/middleware"
	"github.com/hitoshi/chatboard/internal/model"
)

// --- モック定義 ---

type mockMessageService struct {
	listFn       func(ctx context.Context) ([]model.MessageWithOwner, error)
	createFn     func(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error)
	getForEditFn func(ctx context.Context, messageID, requesterID string) (*model.Message, error)
	editFn       func(ctx context.Context, messageID, newBody, requesterID string) error
	deleteFn     func(ctx context.Context, messageID, requesterID string) error
}

func (m *mockMessageService) List(ctx context.Context) ([]model.MessageWithOwner, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockMessageService) Create(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fromName, toName, body, ownerID)
	}
	return &model.Message{}, nil
}

func (m *mockMessageService) GetForEdit(ctx context.Context, messageID, requesterID string) (*model.Message, error) {
	if m.getForEditFn != nil {
		return m.getForEditFn(ctx, messageID, requesterID)
	}
	return &model.Message{}, nil
}

func (m *mockMessageService) Edit(ctx context.Context, messageID, newBody, requesterID string) error {
	if m.editFn != nil {
		return m.editFn(ctx, messageID, newBody, requesterID)
	}
	return nil
}

func (m *mockMessageService) Delete(ctx context.Context, messageID, requesterID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, messageID, requesterID)
	}
	return nil
}

// withURLParam はchiのルートパラメータをリクエストに注入する。
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// asUser はリクエストをログイン済みユーザーのものにする。
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUser(r.Context(), &model.User{ID: userID, Name: "ethan"}))
}

// --- テスト ---

// TestHome_ListsMessagesForAnonymous は未ログインでも全メッセージが閲覧できることを検証する。
func TestHome_ListsMessagesForAnonymous(t *testing.T) {
	svc := &mockMessageService{
		listFn: func(ctx context.Context) ([]model.MessageWithOwner, error) {
			return []model.MessageWithOwner{
				{
					Message:   model.Message{ID: "m1", FromName: "ethan", ToName: "ava", Body: "hi", OwnerID: "user-1", CreatedAt: time.Now()},
					OwnerName: "ethan",
				},
			}, nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "hi") {
		t.Error("expected message body in home page")
	}
	if !strings.Contains(body, "ethan") {
		t.Error("expected owner name in home page")
	}
	// 未ログインでは編集・削除の操作は表示されない
	if strings.Contains(body, "/edit/m1") || strings.Contains(body, "/delete/m1") {
		t.Error("edit and delete controls must not be shown to anonymous viewers")
	}
}

// TestHome_ShowsControlsOnlyForOwnMessages は自分のメッセージにのみ
// 編集・削除の操作が表示されることを検証する。
func TestHome_ShowsControlsOnlyForOwnMessages(t *testing.T) {
	svc := &mockMessageService{
		listFn: func(ctx context.Context) ([]model.MessageWithOwner, error) {
			return []model.MessageWithOwner{
				{Message: model.Message{ID: "mine", Body: "a", OwnerID: "user-1", CreatedAt: time.Now()}, OwnerName: "ethan"},
				{Message: model.Message{ID: "theirs", Body: "b", OwnerID: "user-2", CreatedAt: time.Now()}, OwnerName: "ryan"},
			}, nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), "user-1")
	w := httptest.NewRecorder()

	h.Home(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "/edit/mine") {
		t.Error("expected edit control for own message")
	}
	if !strings.Contains(body, "/delete/mine") {
		t.Error("expected delete control for own message")
	}
	if strings.Contains(body, "/edit/theirs") || strings.Contains(body, "/delete/theirs") {
		t.Error("controls for another user's message must not be shown")
	}
}

// TestHome_EscapesMessageBody はメッセージ本文がHTMLエスケープされて表示されることを検証する。
func TestHome_EscapesMessageBody(t *testing.T) {
	svc := &mockMessageService{
		listFn: func(ctx context.Context) ([]model.MessageWithOwner, error) {
			return []model.MessageWithOwner{
				{Message: model.Message{ID: "m1", Body: `<script>alert("xss")</script>`, OwnerID: "user-1", CreatedAt: time.Now()}, OwnerName: "ethan"},
			}, nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.Home(w, req)

	if strings.Contains(w.Body.String(), "<script>") {
		t.Error("message body must be HTML-escaped")
	}
}

// TestShowNewChat_Anonymous は未ログインでの作成フォーム表示が拒否されることを検証する。
func TestShowNewChat_Anonymous(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{}, newTestRenderer(t))

	req := httptest.NewRequest(http.MethodGet, "/newchat", nil)
	w := httptest.NewRecorder()

	h.ShowNewChat(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestShowNewChat_LoggedIn はログイン済みで作成フォームが表示されることを検証する。
func TestShowNewChat_LoggedIn(t *testing.T) {
	h := NewMessageHandler(&mockMessageService{}, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodGet, "/newchat", nil), "user-1")
	w := httptest.NewRecorder()

	h.ShowNewChat(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `name="msg"`) {
		t.Error("expected message textarea in new chat form")
	}
}

// TestSubmitChat_PassesSessionUserAsOwner はフォーム値とセッションのユーザーIDが
// サービスに渡されることを検証する。
func TestSubmitChat_PassesSessionUserAsOwner(t *testing.T) {
	var gotOwner string
	svc := &mockMessageService{
		createFn: func(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error) {
			if fromName != "ethan" || toName != "ava" || body != "hi" {
				t.Errorf("unexpected create args: %q %q %q", fromName, toName, body)
			}
			gotOwner = ownerID
			return &model.Message{ID: "m1"}, nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	form := url.Values{"from": {"ethan"}, "to": {"ava"}, "msg": {"hi"}}
	req := asUser(formRequest("/submitchat", form), "user-1")
	w := httptest.NewRecorder()

	h.SubmitChat(w, req)

	if gotOwner != "user-1" {
		t.Errorf("owner = %q, want %q", gotOwner, "user-1")
	}
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
}

// TestSubmitChat_Anonymous は未ログインでの投稿が401になることを検証する。
func TestSubmitChat_Anonymous(t *testing.T) {
	svc := &mockMessageService{
		createFn: func(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error) {
			if ownerID != "" {
				t.Errorf("ownerID = %q, want empty for anonymous request", ownerID)
			}
			return nil, model.NewUnauthenticatedError()
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	form := url.Values{"from": {"ethan"}, "to": {"ava"}, "msg": {"hi"}}
	req := formRequest("/submitchat", form)
	w := httptest.NewRecorder()

	h.SubmitChat(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestShowEdit_RendersCurrentBody は編集フォームに現在の本文が表示されることを検証する。
func TestShowEdit_RendersCurrentBody(t *testing.T) {
	svc := &mockMessageService{
		getForEditFn: func(ctx context.Context, messageID, requesterID string) (*model.Message, error) {
			if messageID != "m1" {
				t.Errorf("messageID = %q, want %q", messageID, "m1")
			}
			return &model.Message{ID: "m1", Body: "current body", OwnerID: requesterID}, nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodGet, "/edit/m1", nil), "user-1")
	req = withURLParam(req, "id", "m1")
	w := httptest.NewRecorder()

	h.ShowEdit(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "current body") {
		t.Error("expected current message body in edit form")
	}
}

// TestShowEdit_Forbidden は他人のメッセージの編集フォームが403になることを検証する。
func TestShowEdit_Forbidden(t *testing.T) {
	svc := &mockMessageService{
		getForEditFn: func(ctx context.Context, messageID, requesterID string) (*model.Message, error) {
			return nil, model.NewForbiddenError()
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodGet, "/edit/m1", nil), "user-2")
	req = withURLParam(req, "id", "m1")
	w := httptest.NewRecorder()

	h.ShowEdit(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestSubmitEdit_UpdatesAndRedirects は編集の送信がサービスへ委譲され、
// ホームへリダイレクトされることを検証する。
func TestSubmitEdit_UpdatesAndRedirects(t *testing.T) {
	var gotID, gotBody, gotRequester string
	svc := &mockMessageService{
		editFn: func(ctx context.Context, messageID, newBody, requesterID string) error {
			gotID, gotBody, gotRequester = messageID, newBody, requesterID
			return nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	form := url.Values{"msg": {"updated body"}}
	req := asUser(formRequest("/edited/m1", form), "user-1")
	req = withURLParam(req, "id", "m1")
	w := httptest.NewRecorder()

	h.SubmitEdit(w, req)

	if gotID != "m1" || gotBody != "updated body" || gotRequester != "user-1" {
		t.Errorf("edit called with (%q, %q, %q)", gotID, gotBody, gotRequester)
	}
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
}

// TestDelete_NotFound は存在しないメッセージの削除が404になることを検証する。
func TestDelete_NotFound(t *testing.T) {
	svc := &mockMessageService{
		deleteFn: func(ctx context.Context, messageID, requesterID string) error {
			return model.NewMessageNotFoundError(messageID)
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodDelete, "/delete/gone", nil), "user-1")
	req = withURLParam(req, "id", "gone")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// TestDelete_Success は所有者による削除が成功しリダイレクトされることを検証する。
func TestDelete_Success(t *testing.T) {
	deleted := false
	svc := &mockMessageService{
		deleteFn: func(ctx context.Context, messageID, requesterID string) error {
			deleted = true
			return nil
		},
	}
	h := NewMessageHandler(svc, newTestRenderer(t))

	req := asUser(httptest.NewRequest(http.MethodDelete, "/delete/m1", nil), "user-1")
	req = withURLParam(req, "id", "m1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	if !deleted {
		t.Error("expected delete to be delegated to the service")
	}
	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
}
