// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordSignup()
	RecordLogin()
	RecordMessageCreated()
	RecordMessageEdited()
	RecordMessageDeleted()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	signups         prometheus.Counter
	logins          prometheus.Counter
	messagesCreated prometheus.Counter
	messagesEdited  prometheus.Counter
	messagesDeleted prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chatboard_request_latency_seconds",
			Help:    "リクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatboard_signups_total",
			Help: "ユーザー登録成功の合計数",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatboard_logins_total",
			Help: "ログイン成功の合計数",
		}),
		messagesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatboard_messages_created_total",
			Help: "作成されたメッセージの合計数",
		}),
		messagesEdited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatboard_messages_edited_total",
			Help: "編集されたメッセージの合計数",
		}),
		messagesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chatboard_messages_deleted_total",
			Help: "削除されたメッセージの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.signups,
		c.logins,
		c.messagesCreated,
		c.messagesEdited,
		c.messagesDeleted,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordSignup はユーザー登録成功を記録する。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordLogin はログイン成功を記録する。
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordMessageCreated はメッセージ作成を記録する。
func (c *Collector) RecordMessageCreated() {
	c.messagesCreated.Inc()
}

// RecordMessageEdited はメッセージ編集を記録する。
func (c *Collector) RecordMessageEdited() {
	c.messagesEdited.Inc()
}

// RecordMessageDeleted はメッセージ削除を記録する。
func (c *Collector) RecordMessageDeleted() {
	c.messagesDeleted.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
