package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/chatboard/internal/config"
	"github.com/hitoshi/chatboard/internal/database"
	"github.com/hitoshi/chatboard/internal/model"
	"github.com/hitoshi/chatboard/internal/repository"
)

// seedOwnerEmail はサンプルメッセージの所有者として使用するアカウント。
// 事前にサインアップ済みであること。SEED_OWNER_EMAILで上書きできないのは意図的で、
// 開発環境専用のコマンドのため固定値にしている。
const seedOwnerEmail = "seed@example.com"

// seedMessage はサンプルメッセージの定義。
type seedMessage struct {
	from, to, body string
}

// seedMessages は開発環境の初期表示用サンプルメッセージ。
var seedMessages = []seedMessage{
	{from: "ethan", to: "ava", body: "did you finish the project?"},
	{from: "ryan", to: "sophia", body: "call me when you're free."},
	{from: "daniel", to: "hannah", body: "movie night tomorrow?"},
	{from: "noah", to: "charlotte", body: "miss you!"},
}

// runSeed はメッセージテーブルを空にしてからサンプルメッセージを投入する。
// 所有者アカウント（seed@example.com）が未登録の場合はエラーを返す。
// 開発環境の初期データ投入専用であり、本番での実行は想定しない。
func runSeed(cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	userRepo := repository.NewPostgresUserRepo(db)
	messageRepo := repository.NewPostgresMessageRepo(db)

	owner, err := userRepo.FindByEmail(ctx, seedOwnerEmail)
	if err != nil {
		return fmt.Errorf("failed to find seed owner: %w", err)
	}
	if owner == nil {
		return fmt.Errorf("seed owner %s is not registered; sign up first", seedOwnerEmail)
	}

	// 既存メッセージをクリアしてから投入する
	if _, err := db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	for _, sm := range seedMessages {
		msg := &model.Message{
			ID:        uuid.New().String(),
			FromName:  sm.from,
			ToName:    sm.to,
			Body:      sm.body,
			OwnerID:   owner.ID,
			CreatedAt: time.Now(),
		}
		if err := messageRepo.Create(ctx, msg); err != nil {
			return fmt.Errorf("failed to insert seed message: %w", err)
		}
	}

	slog.Info("seed completed",
		slog.Int("messages", len(seedMessages)),
		slog.String("owner_id", owner.ID),
	)

	return nil
}
