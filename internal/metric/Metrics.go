package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 1.1 Группа Gateway: вызовы платежного шлюза
	GatewayRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payment",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Статистика вызовов платежного шлюза",
	}, []string{"operation", "status"}) // tokenize/charge_card/charge_pix, success/rejected/unavailable

	//1.2 Гистограмма длительности вызовов шлюза
	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payment",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Время вызовов платежного шлюза",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// 2. Группа Webhook: события от шлюза
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payment",
		Subsystem: "webhook",
		Name:      "events_total",
		Help:      "Сколько событий пришло на вебхук и что с ними стало",
	}, []string{"type", "result"}) // processed/duplicate/ignored/miss/skipped/error

	//3.1 Группа Database: операции записи/чтения
	DbOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payment",
		Subsystem: "db",
		Name:      "operations_total",
		Help:      "Статистика операций с БД",
	}, []string{"operation", "status"})

	//3.2 Гистограмма для БД
	DbDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "payment",
		Subsystem: "db",
		Name:      "operation_duration_seconds",
		Help:      "Время выполнения операций с БД",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	//4.1 Размер кеша платежных состояний
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "payment",
		Subsystem: "cache",
		Name:      "items_count",
		Help:      "Текущее количество платежных состояний в оперативной памяти",
	})

	//4.2 коф попадания в кеш
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payment",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Попадания и промахи кеша платежных состояний",
	}, []string{"result"}) //hit-нашли, miss-нет

	//5 запросы
	RequestMetrics = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "payment",
		Subsystem:  "http",
		Name:       "request",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

func ObserveRequest(t time.Duration, status int) {
	RequestMetrics.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}
