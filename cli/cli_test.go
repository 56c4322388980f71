// Package cli_test drives the command tree end to end on small networks.
//
// Focus:
//   - demo / solve / sweep write result files and print summaries
//   - runs reads back what the store recorded
//   - flag overrides are validated
//   - generated networks are reproducible for every layout
package cli_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kmst"
	"github.com/katalvlaran/kmst/cli"
	"github.com/katalvlaran/kmst/core"
	"github.com/katalvlaran/kmst/export"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("KMST_CONFIG", "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCommand(context.Background(), "test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestNetwork(t *testing.T) {
	root, a, err := cli.Network(cli.DemoLayout, cli.DemoSeed, 50, 1000)
	require.NoError(t, err)
	_, b, err := cli.Network(cli.DemoLayout, cli.DemoSeed, 50, 1000)
	require.NoError(t, err)
	assert.Equal(t, core.Point{}, root)
	assert.Equal(t, a, b)
	for _, p := range a {
		assert.Less(t, math.Hypot(p.X, p.Y), 1000.0)
	}

	for _, layout := range []string{"ring", "grid", "clusters"} {
		_, pts, err := cli.Network(layout, 1, 17, 1000)
		require.NoError(t, err, layout)
		assert.Len(t, pts, 17, layout)
	}

	_, _, err = cli.Network("spiral", 1, 10, 1000)
	assert.Error(t, err)
}

func TestDemo_WritesFilesAndStore(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	db := filepath.Join(dir, "runs.db")
	prom := filepath.Join(dir, "kmst.prom")

	stdout, err := run(t, "demo", "--nodes", "8", "-k", "3", "-o", out, "--store", db, "--metrics-textfile", prom)
	require.NoError(t, err)
	assert.Contains(t, stdout, "k: 3\n")
	assert.Contains(t, stdout, "status: optimal\n")

	for _, name := range []string{"points.geojson", export.NodesFile, export.EdgesFile, export.SummaryFile} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	body, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(body), `kmst_solves_total{status="optimal"} 1`)

	stdout, err = run(t, "runs", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "optimal")
}

func TestDemo_Defaults(t *testing.T) {
	if testing.Short() {
		t.Skip("100-node demo")
	}
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "demo", "-o", out, "--time-limit", "30s")
	require.NoError(t, err)
	assert.Contains(t, stdout, "k: 20\n")
	assert.Contains(t, stdout, "nodes_selected: 20\n")
	assert.Contains(t, stdout, "edges_selected: 19\n")
	assert.Regexp(t, `status: (optimal|suboptimal)\n`, stdout)

	pts, err := os.Open(filepath.Join(out, "points.geojson"))
	require.NoError(t, err)
	defer pts.Close()
	_, cands, err := export.ReadPoints(pts)
	require.NoError(t, err)
	assert.Len(t, cands, cli.DemoNodes)
}

func TestSolve_Backend(t *testing.T) {
	dir := t.TempDir()

	stdout, err := run(t, "solve", "--demo", "--nodes", "8", "-k", "3", "--backend", "bb", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "nodes_selected: 3\n")

	_, err = run(t, "solve", "--demo", "--nodes", "8", "-k", "3", "--backend", "gurobi", "-o", dir)
	assert.ErrorContains(t, err, "solver.backend")
}

func TestSolve_FromInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "points.geojson")
	f, err := os.Create(input)
	require.NoError(t, err)
	cands := []core.Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	require.NoError(t, export.WritePoints(f, core.Point{}, cands))
	require.NoError(t, f.Close())

	stdout, err := run(t, "solve", "-i", input, "-k", "3", "-o", filepath.Join(dir, "out"), "--gap", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nodes_selected: 3\n")
	assert.Contains(t, stdout, "total_weight: 2.000000\n")
}

func TestSolve_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "solve", "-k", "3", "-o", dir)
	assert.ErrorContains(t, err, "--input or --demo")

	_, err = run(t, "solve", "--demo", "-o", dir)
	assert.ErrorContains(t, err, "--k")

	_, err = run(t, "solve", "--demo", "-k", "3", "--policy", "bogus", "-o", dir)
	assert.Error(t, err)

	_, err = run(t, "solve", "-i", filepath.Join(dir, "missing.geojson"), "-k", "3", "-o", dir)
	assert.Error(t, err)

	_, err = run(t, "runs")
	assert.ErrorContains(t, err, "no store")
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	stdout, err := run(t, "sweep", "--demo", "--layout", "ring", "--nodes", "6", "--from", "1", "--to", "3", "-o", out, "--concurrency", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "1 "))
	for k := 1; k <= 3; k++ {
		assert.DirExists(t, filepath.Join(out, "k_"+string(rune('0'+k))))
	}
}

func TestRuns_CurvePerNetwork(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	_, err := run(t, "sweep", "--demo", "--layout", "ring", "--nodes", "6", "--from", "1", "--to", "3",
		"-o", filepath.Join(dir, "a"), "--store", db)
	require.NoError(t, err)
	_, err = run(t, "sweep", "--demo", "--layout", "ring", "--nodes", "7", "--from", "2", "--to", "3",
		"-o", filepath.Join(dir, "b"), "--store", db)
	require.NoError(t, err)

	stdout, err := run(t, "runs", "--curve", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3, "only the latest network's k=2,3")

	root, cands, err := cli.Network("ring", cli.DemoSeed, 6, cli.DemoRadius)
	require.NoError(t, err)
	stdout, err = run(t, "runs", "--curve", "--network", kmst.NetworkID(root, cands), "--store", db)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kmst.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("solver:\n  gap: 2\n"), 0o644))

	_, err := run(t, "--config", cfg, "solve", "--demo", "-k", "2", "-o", dir)
	assert.Error(t, err)
}
