// Package metrics_test checks observation bookkeeping and textfile output.
//
// Focus:
//   - counters split by status
//   - zero-sized observations are skipped
//   - textfile contains the metric families
package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/metrics"
)

var _ kmst.Recorder = (*metrics.Metrics)(nil)

func TestObserveSolve(t *testing.T) {
	m := metrics.New()
	m.ObserveSolve("optimal", 20*time.Millisecond, 40, 3)
	m.ObserveSolve("optimal", 10*time.Millisecond, 40, 1)
	m.ObserveSolve("input_error", time.Millisecond, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues("optimal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues("input_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SolveDuration))

	n, err := testutil.GatherAndCount(m.Registry, "kmst_bb_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveSolve("suboptimal", time.Second, 100, 12)

	path := filepath.Join(t.TempDir(), "kmst.prom")
	require.NoError(t, m.WriteTextfile(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, name := range []string{"kmst_solves_total", "kmst_solve_duration_seconds", "kmst_candidate_edges", "kmst_bb_nodes"} {
		assert.Contains(t, string(body), name)
	}
	assert.Contains(t, string(body), `status="suboptimal"`)

	assert.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}

func TestDefault_Singleton(t *testing.T) {
	assert.Same(t, metrics.Default(), metrics.Default())
}
