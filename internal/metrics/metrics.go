// Package metrics はPrometheusのコレクタを定義する
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cinepetro"

var (
	// HTTPRequests は method / route / status ごとのリクエスト数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration はレイテンシ
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ProgressSaves は視聴進捗の保存結果
	ProgressSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_saves_total",
		Help:      "Watch progress writes by content kind and outcome.",
	}, []string{"kind", "result"})

	// ContinueWatchingSkipped は変換できずに捨てた行
	ContinueWatchingSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "continue_watching_skipped_rows_total",
		Help:      "Rows dropped from the continue-watching shelf because they could not be mapped.",
	}, []string{"kind"})
)

// 保存結果のラベル値
const (
	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Handler は /metrics 用のハンドラ
func Handler() http.Handler {
	return promhttp.Handler()
}
