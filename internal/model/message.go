package model

import "time"

// Message は1件のチャットメッセージを表す。
// FromName / ToName は自由入力のテキストであり、Userとの照合は行わない。
// OwnerID は投稿リクエストを行ったユーザーのIDで、編集・削除の権限判定に使う。
type Message struct {
	ID        string
	FromName  string
	ToName    string
	Body      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt *time.Time // 未編集の場合はnil
}

// MessageWithOwner はメッセージと投稿者の公開情報を結合した構造体。
// ホーム画面の一覧表示で投稿者名を表示するために使用する。
type MessageWithOwner struct {
	Message
	OwnerName  string
	OwnerEmail string
}

// IsOwnedBy は指定ユーザーIDがこのメッセージの所有者かどうかを返す。
// 権限判定はID の厳密一致のみで行い、管理者等の上位権限は存在しない。
func (m *Message) IsOwnedBy(userID string) bool {
	return userID != "" && m.OwnerID == userID
}
