// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package restake

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsListener(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	group := NewSlashListeners(m)
	recorder := &RecordingSlashListener{}
	group.Register(recorder)

	group.InstantSlashApplied(InstantSlash{Amount: uint256.NewInt(1)})
	group.InstantSlashApplied(InstantSlash{Amount: uint256.NewInt(2)})
	group.VetoSlashRequested(VetoSlashRequest{RequestIndex: 0})

	require.Equal(float64(2), testutil.ToFloat64(m.instantSlashes))
	require.Equal(float64(1), testutil.ToFloat64(m.vetoSlashRequests))

	// Fan-out reached every listener in the group.
	require.Len(recorder.Instant, 2)
	require.Len(recorder.Veto, 1)
}
