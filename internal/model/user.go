// Package model はドメインモデルを定義する。
package model

import "time"

// User は登録済みユーザーを表す。
// メールアドレスが一意の識別キーとなる。
// 作成後の編集・削除フローは存在しない。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcryptハッシュ。平文は保持しない。
	CreatedAt    time.Time
}
