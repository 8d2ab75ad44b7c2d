// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riptide_pass_duration_seconds",
		Help:    "Duration of commit passes",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10us to ~300ms
	}, []string{"pass"})

	passErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riptide_pass_errors_total",
		Help: "Commit passes that ended with an error",
	}, []string{"pass"})

	RendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riptide_renders_total",
		Help: "Component render calls",
	})

	MovesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riptide_moves_total",
		Help: "Mounted output nodes relocated by keyed and reinsert updates",
	})

	VisitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riptide_dirtycheck_visited_total",
		Help: "Instances entered by the dirty-check walk",
	})
)

func observePass(name string, start time.Time, delta Stats, err error) {
	passDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		passErrors.WithLabelValues(name).Inc()
	}
	RendersTotal.Add(float64(delta.Renders))
	MovesTotal.Add(float64(delta.Moves))
	VisitedTotal.Add(float64(delta.Visited))
}
