package transition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedSlotsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "state_transition_processed_slots_total",
		Help: "Number of slots processed by the state transition",
	})
	processedEpochsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "state_transition_processed_epochs_total",
		Help: "Number of epoch transitions processed",
	})
	processedBlocksCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "state_transition_processed_blocks_total",
		Help: "Number of blocks applied to a state",
	})
	transitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "state_transition_failures_total",
		Help: "Number of failed state transitions by reason",
	}, []string{"reason"})
	currentJustifiedEpoch = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_current_justified_epoch",
		Help: "Current justified epoch of the last processed state",
	})
	previousJustifiedEpoch = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_previous_justified_epoch",
		Help: "Previous justified epoch of the last processed state",
	})
	finalizedEpoch = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "beacon_finalized_epoch",
		Help: "Finalized epoch of the last processed state",
	})
)
