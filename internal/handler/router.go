package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/chatboard/internal/metrics"
	"github.com/hitoshi/chatboard/internal/middleware"
	"github.com/hitoshi/chatboard/internal/view"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	UserFinder  middleware.UserFinder
	TokenSecret string
	Logger      *slog.Logger
	Metrics     middleware.HTTPMetricsRecorder

	// 監視
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// メッセージ
	MessageService MessageServiceInterface

	// レンダリング
	Renderer *view.Renderer
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → MethodOverride → SessionResolver → Logging → Metrics → SecurityHeaders
//
// セッションリゾルバーは全リクエストに対して、身元を参照するどのハンドラーよりも
// 先に実行される。未定義ルートは固定メッセージの404に収束する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewMethodOverrideMiddleware())
	r.Use(middleware.NewSessionResolverMiddleware(deps.UserFinder, []byte(deps.TokenSecret)))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.Renderer, deps.AuthConfig)
	messageHandler := NewMessageHandler(deps.MessageService, deps.Renderer)

	// 認証フロー
	r.Get("/signup", authHandler.ShowSignup)
	r.Post("/signup", authHandler.Signup)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// メッセージCRUD
	r.Get("/", messageHandler.Home)
	r.Get("/newchat", messageHandler.ShowNewChat)
	r.Post("/submitchat", messageHandler.SubmitChat)
	r.Get("/edit/{id}", messageHandler.ShowEdit)
	r.Patch("/edited/{id}", messageHandler.SubmitEdit)
	r.Delete("/delete/{id}", messageHandler.Delete)

	// 監視エンドポイント
	if deps.HealthChecker != nil {
		r.Get("/health", NewHealthHandler(deps.HealthChecker))
	}
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// 未定義ルートは固定メッセージの404
	r.NotFound(NotFound)

	return r
}
