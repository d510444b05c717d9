// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/chatboard/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスの一意制約違反の場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// MessageRepository はメッセージデータの永続化インターフェース。
type MessageRepository interface {
	// ListWithOwners は全メッセージを投稿者の公開情報付きで取得する。
	// created_at昇順（挿入順）で返す。ページネーションは行わない。
	ListWithOwners(ctx context.Context) ([]model.MessageWithOwner, error)

	// FindByID は指定IDのメッセージを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Message, error)

	// Create はメッセージを作成する。
	Create(ctx context.Context, message *model.Message) error

	// UpdateBody は本文と更新日時を上書きする。
	// 対象が存在しない場合はErrMessageGoneを返す。
	UpdateBody(ctx context.Context, id, body string) error

	// Delete は指定IDのメッセージを完全に削除する。
	// 論理削除やトゥームストーンは行わない。
	Delete(ctx context.Context, id string) error
}
