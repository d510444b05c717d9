// Package auth はアカウント登録・認証とセッショントークンの発行を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/chatboard/internal/model"
	"github.com/hitoshi/chatboard/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	TokenSecret string
	TokenMaxAge int // トークン有効期間（秒）
}

// AccountMetricsRecorder は認証イベントの記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type AccountMetricsRecorder interface {
	RecordSignup()
	RecordLogin()
}

// Service はアカウント登録・認証のビジネスロジックを提供する。
// セッション状態はサーバー側に持たず、署名付きトークンのみで認証する。
type Service struct {
	userRepo repository.UserRepository
	metrics  AccountMetricsRecorder
	config   ServiceConfig
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(userRepo repository.UserRepository, metrics AccountMetricsRecorder, config ServiceConfig) *Service {
	return &Service{
		userRepo: userRepo,
		metrics:  metrics,
		config:   config,
	}
}

// Register は新規ユーザーを登録し、セッショントークンを発行する。
// サインアップの成功はそのままログイン状態となる。
// 同一メールアドレスが既に登録されている場合はDUPLICATE_EMAILエラーを返す。
func (s *Service) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, "", model.NewInvalidInputError("メールアドレス")
	}
	if name == "" {
		return nil, "", model.NewInvalidInputError("ユーザー名")
	}
	if password == "" {
		return nil, "", model.NewInvalidInputError("パスワード")
	}

	// 先にメールアドレスの存在を確認する。
	// 同時登録との競合はINSERT時の一意制約が最終防壁となる。
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewDuplicateEmailError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", model.NewDuplicateEmailError()
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.metrics != nil {
		s.metrics.RecordSignup()
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// Authenticate はメールアドレスとパスワードでユーザーを認証し、セッショントークンを発行する。
// アカウントの存在を漏らさないため、メールアドレス未登録とパスワード不一致は
// いずれも同一のINVALID_CREDENTIALSエラーとなる。
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", model.NewInvalidInputError("メールアドレス")
	}
	if password == "" {
		return nil, "", model.NewInvalidInputError("パスワード")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.metrics != nil {
		s.metrics.RecordLogin()
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// mintToken はユーザーIDをエンコードした署名付きトークンを生成する。
func (s *Service) mintToken(userID string) (string, error) {
	token, err := MintToken(userID, []byte(s.config.TokenSecret), time.Duration(s.config.TokenMaxAge)*time.Second)
	if err != nil {
		return "", fmt.Errorf("failed to mint session token: %w", err)
	}
	return token, nil
}
