package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger operation metrics
var (
	mActionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token_ledger",
		Subsystem: "ledger",
		Name:      "actions_applied_total",
		Help:      "Number of actions applied, inline actions included",
	}, []string{"action"})
	mOperationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token_ledger",
		Subsystem: "ledger",
		Name:      "operations_rejected_total",
		Help:      "Number of operations rolled back, by failure kind",
	}, []string{"action", "kind"})
	mOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token_ledger",
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Time spent applying an operation, including its storage transaction",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})
)
