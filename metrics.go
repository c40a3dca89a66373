// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ SlashListener = (*Metrics)(nil)

// Metrics is a SlashListener that counts dispatch outcomes.
type Metrics struct {
	instantSlashes    prometheus.Counter
	vetoSlashRequests prometheus.Counter
}

// NewMetrics creates the slash metrics and registers them on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		instantSlashes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "instant_slashes_applied",
				Help: "Number of instant slashes applied",
			},
		),
		vetoSlashRequests: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "veto_slashes_requested",
				Help: "Number of veto slashes requested",
			},
		),
	}
	registerer.MustRegister(m.instantSlashes)
	registerer.MustRegister(m.vetoSlashRequests)

	return m
}

func (m *Metrics) InstantSlashApplied(InstantSlash) {
	m.instantSlashes.Inc()
}

func (m *Metrics) VetoSlashRequested(VetoSlashRequest) {
	m.vetoSlashRequests.Inc()
}
