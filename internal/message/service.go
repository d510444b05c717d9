// Package message はメッセージのドメインロジックを提供する。
package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/chatboard/internal/model"
	"github.com/hitoshi/chatboard/internal/repository"
)

// Sanitizer はユーザー入力フィールドのサニタイズインターフェース。
// security.FieldSanitizerServiceの部分集合として定義する。
type Sanitizer interface {
	Sanitize(raw string) string
}

// MessageMetricsRecorder はメッセージ操作の記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type MessageMetricsRecorder interface {
	RecordMessageCreated()
	RecordMessageEdited()
	RecordMessageDeleted()
}

// Service はメッセージの一覧・作成・編集・削除のビジネスロジックを提供する。
// 編集・削除は所有者IDの厳密一致でのみ許可される。
type Service struct {
	messageRepo repository.MessageRepository
	sanitizer   Sanitizer
	metrics     MessageMetricsRecorder
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(messageRepo repository.MessageRepository, sanitizer Sanitizer, metrics MessageMetricsRecorder) *Service {
	return &Service{
		messageRepo: messageRepo,
		sanitizer:   sanitizer,
		metrics:     metrics,
	}
}

// List は全メッセージを投稿者の公開情報付きで返す。
// ページネーションは行わず、件数は無制限（許容された制限事項）。
func (s *Service) List(ctx context.Context) ([]model.MessageWithOwner, error) {
	messages, err := s.messageRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Create は新規メッセージを作成する。
// 未ログインの場合はUNAUTHENTICATEDエラーを返す。
// 送信者名・宛先名・本文は空であってはならない（存在チェックのみ、形式検証は行わない）。
func (s *Service) Create(ctx context.Context, fromName, toName, body, ownerID string) (*model.Message, error) {
	if ownerID == "" {
		return nil, model.NewUnauthenticatedError()
	}

	fromName = s.sanitizer.Sanitize(fromName)
	toName = s.sanitizer.Sanitize(toName)
	body = s.sanitizer.Sanitize(body)

	if fromName == "" {
		return nil, model.NewInvalidInputError("送信者名")
	}
	if toName == "" {
		return nil, model.NewInvalidInputError("宛先名")
	}
	if body == "" {
		return nil, model.NewInvalidInputError("本文")
	}

	msg := &model.Message{
		ID:        uuid.New().String(),
		FromName:  fromName,
		ToName:    toName,
		Body:      body,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordMessageCreated()
	}

	slog.Info("message created",
		slog.String("message_id", msg.ID),
		slog.String("owner_id", ownerID),
	)

	return msg, nil
}

// GetForEdit は編集フォーム表示用にメッセージを取得し、所有権を検証する。
// 未ログイン→UNAUTHENTICATED、メッセージなし→MESSAGE_NOT_FOUND、
// 所有者不一致→FORBIDDEN の順で判定する。
func (s *Service) GetForEdit(ctx context.Context, messageID, requesterID string) (*model.Message, error) {
	return s.fetchOwned(ctx, messageID, requesterID)
}

// Edit はメッセージの本文を差し替え、更新日時を設定する。
// 所有権チェックはGetForEditと共通（ID厳密一致、上位権限なし）。
func (s *Service) Edit(ctx context.Context, messageID, newBody, requesterID string) error {
	if _, err := s.fetchOwned(ctx, messageID, requesterID); err != nil {
		return err
	}

	newBody = s.sanitizer.Sanitize(newBody)
	if newBody == "" {
		return model.NewInvalidInputError("本文")
	}

	if err := s.messageRepo.UpdateBody(ctx, messageID, newBody); err != nil {
		// 所有権チェックと更新の間に削除された場合
		if errors.Is(err, repository.ErrMessageGone) {
			return model.NewMessageNotFoundError(messageID)
		}
		return fmt.Errorf("failed to update message: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordMessageEdited()
	}

	slog.Info("message edited",
		slog.String("message_id", messageID),
		slog.String("owner_id", requesterID),
	)

	return nil
}

// Delete はメッセージを完全に削除する。所有権チェックはEditと共通。
func (s *Service) Delete(ctx context.Context, messageID, requesterID string) error {
	if _, err := s.fetchOwned(ctx, messageID, requesterID); err != nil {
		return err
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		if errors.Is(err, repository.ErrMessageGone) {
			return model.NewMessageNotFoundError(messageID)
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordMessageDeleted()
	}

	slog.Info("message deleted",
		slog.String("message_id", messageID),
		slog.String("owner_id", requesterID),
	)

	return nil
}

// fetchOwned はメッセージを取得し、リクエストユーザーが所有者であることを検証する。
// 未ログイン判定を所有権の参照より先に行い、匿名リクエストが
// 一般エラーではなく明確なUNAUTHENTICATEDで拒否されるようにする。
func (s *Service) fetchOwned(ctx context.Context, messageID, requesterID string) (*model.Message, error) {
	if requesterID == "" {
		return nil, model.NewUnauthenticatedError()
	}

	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	if msg == nil {
		return nil, model.NewMessageNotFoundError(messageID)
	}
	if !msg.IsOwnedBy(requesterID) {
		return nil, model.NewForbiddenError()
	}

	return msg, nil
}
