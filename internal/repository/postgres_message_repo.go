package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/chatboard/internal/model"
)

// ErrMessageGone は更新・削除対象のメッセージが既に存在しないことを表すセンチネルエラー。
var ErrMessageGone = errors.New("message no longer exists")

// PostgresMessageRepo はPostgreSQLを使用したメッセージリポジトリ。
type PostgresMessageRepo struct {
	db *sql.DB
}

// NewPostgresMessageRepo はPostgresMessageRepoを生成する。
func NewPostgresMessageRepo(db *sql.DB) *PostgresMessageRepo {
	return &PostgresMessageRepo{db: db}
}

// ListWithOwners は全メッセージを投稿者の公開情報付きで取得する。
// ストアがネイティブJOINをサポートするため、1クエリで結合する。
func (r *PostgresMessageRepo) ListWithOwners(ctx context.Context) ([]model.MessageWithOwner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.from_name, m.to_name, m.body, m.owner_id,
		        m.created_at, m.updated_at, u.name, u.email
		 FROM messages m
		 JOIN users u ON u.id = m.owner_id
		 ORDER BY m.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var result []model.MessageWithOwner
	for rows.Next() {
		var mw model.MessageWithOwner
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&mw.ID, &mw.FromName, &mw.ToName, &mw.Body, &mw.OwnerID,
			&mw.CreatedAt, &updatedAt, &mw.OwnerName, &mw.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			mw.UpdatedAt = &t
		}
		result = append(result, mw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}

	return result, nil
}

// FindByID は指定IDのメッセージを取得する。見つからない場合はnilを返す。
func (r *PostgresMessageRepo) FindByID(ctx context.Context, id string) (*model.Message, error) {
	message := &model.Message{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, from_name, to_name, body, owner_id, created_at, updated_at
		 FROM messages WHERE id = $1`,
		id,
	).Scan(
		&message.ID, &message.FromName, &message.ToName, &message.Body,
		&message.OwnerID, &message.CreatedAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		message.UpdatedAt = &t
	}

	return message, nil
}

// Create はメッセージを作成する。
func (r *PostgresMessageRepo) Create(ctx context.Context, message *model.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, from_name, to_name, body, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		message.ID, message.FromName, message.ToName, message.Body,
		message.OwnerID, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// UpdateBody は本文を上書きし、updated_atに現在時刻を設定する。
// 同一メッセージへの同時更新はlast-writer-winsとなり、検出は行わない。
func (r *PostgresMessageRepo) UpdateBody(ctx context.Context, id, body string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET body = $1, updated_at = now() WHERE id = $2`,
		body, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMessageGone
	}

	return nil
}

// Delete は指定IDのメッセージを完全に削除する。
func (r *PostgresMessageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMessageGone
	}

	return nil
}

// compile-time interface check
var _ MessageRepository = (*PostgresMessageRepo)(nil)
