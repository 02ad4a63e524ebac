package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics counts engine activity. Create one with NewMetrics and pass
// Hooks() to the engine.
type Metrics struct {
	flowsStarted *prometheus.CounterVec
	flowResults  *prometheus.CounterVec
	entries      *prometheus.CounterVec
	saves        *prometheus.CounterVec
	saveErrors   prometheus.Counter
}

// NewMetrics creates and registers the engine collectors on the given
// registerer. Pass prometheus.DefaultRegisterer to use the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		flowsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "flows_started_total",
			Help:      "Configuration flows started, by domain.",
		}, []string{"domain"}),
		flowResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "flow_results_total",
			Help:      "Step results produced, by domain and result type.",
		}, []string{"domain", "type"}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "entries_created_total",
			Help:      "Configuration entries committed, by domain and source.",
		}, []string{"domain", "source"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "saves_total",
			Help:      "Entry list persistence attempts, by outcome.",
		}, []string{"outcome"}),
	}
	m.saveErrors = m.saves.WithLabelValues("error")

	reg.MustRegister(m.flowsStarted, m.flowResults, m.entries, m.saves)
	return m
}

// Hooks returns lifecycle hooks feeding these collectors. Combine with
// other hooks via Merge if needed.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFlowStart: func(_ context.Context, ev *domain.FlowEvent) {
			m.flowsStarted.WithLabelValues(ev.Domain).Inc()
		},
		OnFlowResult: func(_ context.Context, ev *domain.ResultEvent) {
			m.flowResults.WithLabelValues(ev.Domain, string(ev.Type)).Inc()
		},
		OnEntryCreated: func(_ context.Context, ev *domain.EntryEvent) {
			m.entries.WithLabelValues(ev.Entry.Domain, ev.Entry.Source).Inc()
		},
		OnSave: func(_ context.Context, ev *domain.SaveEvent) {
			if ev.Err != nil {
				m.saveErrors.Inc()
				return
			}
			m.saves.WithLabelValues("ok").Inc()
		},
	}
}

// Merge chains hook sets so every non-nil callback in each set runs.
func Merge(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, set := range sets {
		set := set
		if set.OnFlowStart != nil {
			prev := merged.OnFlowStart
			merged.OnFlowStart = func(ctx context.Context, ev *domain.FlowEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				set.OnFlowStart(ctx, ev)
			}
		}
		if set.OnFlowResult != nil {
			prev := merged.OnFlowResult
			merged.OnFlowResult = func(ctx context.Context, ev *domain.ResultEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				set.OnFlowResult(ctx, ev)
			}
		}
		if set.OnEntryCreated != nil {
			prev := merged.OnEntryCreated
			merged.OnEntryCreated = func(ctx context.Context, ev *domain.EntryEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				set.OnEntryCreated(ctx, ev)
			}
		}
		if set.OnSave != nil {
			prev := merged.OnSave
			merged.OnSave = func(ctx context.Context, ev *domain.SaveEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				set.OnSave(ctx, ev)
			}
		}
	}
	return merged
}
