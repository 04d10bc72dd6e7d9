package observability

import (
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the editor collectors.
type Metrics struct {
	Edits     *prometheus.CounterVec
	Rebuilds  prometheus.Counter
	Discarded prometheus.Counter
	Pending   *prometheus.GaugeVec
	Committed *prometheus.CounterVec
	Failures  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Edits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricetree_edits_total",
				Help: "Edits submitted to the editor, by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricetree_rebuilds_total",
			Help: "Snapshot rebuilds triggered by a changed upstream input.",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricetree_discarded_edits_total",
			Help: "Uncommitted edits dropped by rebuilds.",
		}),
		Pending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pricetree_pending_operations",
				Help: "Size of the last computed change set, by operation.",
			},
			[]string{"op"},
		),
		Committed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricetree_committed_operations_total",
				Help: "Operations handed to the persistence layer, by operation.",
			},
			[]string{"op"},
		),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricetree_commit_failures_total",
			Help: "Commits that returned an error.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Edits, m.Rebuilds, m.Discarded, m.Pending, m.Committed, m.Failures)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEdit: func(e *domain.EditEvent) {
			m.Edits.WithLabelValues(string(e.Kind), "applied").Inc()
		},
		OnReject: func(e *domain.EditEvent) {
			m.Edits.WithLabelValues(string(e.Kind), "rejected").Inc()
		},
		OnRebuild: func(e *domain.RebuildEvent) {
			m.Rebuilds.Inc()
			m.Discarded.Add(float64(e.DiscardedEdits))
		},
		OnChanges: func(e *domain.ChangesEvent) {
			m.Pending.WithLabelValues("create").Set(float64(len(e.Changes.Creates)))
			m.Pending.WithLabelValues("update").Set(float64(len(e.Changes.Updates)))
			m.Pending.WithLabelValues("delete").Set(float64(len(e.Changes.Deletes)))
		},
		OnCommit: func(e *domain.ChangesEvent, err error) {
			if err != nil {
				m.Failures.Inc()
				return
			}
			m.Committed.WithLabelValues("create").Add(float64(len(e.Changes.Creates)))
			m.Committed.WithLabelValues("update").Add(float64(len(e.Changes.Updates)))
			m.Committed.WithLabelValues("delete").Add(float64(len(e.Changes.Deletes)))
		},
	}
}
