package metrics

import (
	"context"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const namespace = "course_feedback"

// Submission outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
)

// Dashboard load outcomes.
const (
	LoadOK       = "ok"
	LoadDegraded = "degraded"
)

// Metrics owns a registry per server so tests can build many servers.
type Metrics struct {
	Registry       *prometheus.Registry
	Submissions    *prometheus.CounterVec
	DashboardLoads *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Feedback submissions by outcome.",
		}, []string{"outcome"}),
		DashboardLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_loads_total",
			Help:      "Feedback snapshot loads by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Submissions, m.DashboardLoads)
	return m
}

func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLoad(outcome string) {
	if m == nil {
		return
	}
	m.DashboardLoads.WithLabelValues(outcome).Inc()
}

// RegisterRedis exports the connected client count of client.
func (m *Metrics) RegisterRedis(client *redis.Client) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Subsystem: "redis",
			Name:      "connected_clients",
			Help:      "The number of clients currently connected to Redis",
		},
		func() float64 {
			ctx := context.Background()
			connectedClientsRaw := client.InfoMap(ctx).Item("Clients", "connected_clients")

			connectedClients, err := strconv.ParseFloat(connectedClientsRaw, 64)
			if err != nil {
				return math.NaN()
			}

			return connectedClients
		},
	))
}
