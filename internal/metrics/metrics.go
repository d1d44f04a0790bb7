// Package metrics provides Prometheus metrics for duel coordination.
// Labels are bounded enums only; never duel or participant ids.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DuelsCreatedTotal counts persisted duels.
	DuelsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "faceoff_duels_created_total",
		Help: "Total number of duels created.",
	})

	// DuelTransitionsTotal counts committed state changes by target state.
	DuelTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceoff_duel_transitions_total",
		Help: "Total number of committed duel state transitions, by target state.",
	}, []string{"state"})

	// DuelOutcomesTotal counts resolutions by outcome (win, draw_flip, draw_timeout).
	DuelOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceoff_duel_outcomes_total",
		Help: "Total number of resolved duels, by outcome.",
	}, []string{"outcome"})

	// DuelConflictRetriesTotal counts optimistic concurrency retries by operation.
	DuelConflictRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceoff_duel_conflict_retries_total",
		Help: "Total number of version conflicts that forced a transition retry, by operation.",
	}, []string{"operation"})

	// MatchmakingTotal counts opponent searches by result (matched, no_opponent, error).
	MatchmakingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceoff_matchmaking_total",
		Help: "Total number of opponent searches, by result.",
	}, []string{"result"})

	// NotificationsTotal counts delivery attempts by transport and result (ok, error).
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceoff_notifications_total",
		Help: "Total number of notification deliveries, by transport and result.",
	}, []string{"transport", "result"})

	// ScoreDeltaFailuresTotal counts score changes lost after a committed transition.
	ScoreDeltaFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "faceoff_score_delta_failures_total",
		Help: "Total number of score deltas that failed after their transition committed.",
	})
)
