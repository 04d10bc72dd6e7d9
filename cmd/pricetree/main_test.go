package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pricetree/internal/presentation/report"
	"github.com/stretchr/testify/assert"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const scenarioFile = "../../internal/scenario/testdata/contract.yaml"

// run executes the root command. Flags live on package level commands and keep their values
// between executions, so they are reset to their defaults first.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPlanJSON(t *testing.T) {
	out, _, err := run(t, "plan", "-f", scenarioFile, "--format", "auto")
	require.NoError(t, err)

	var plan report.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "contract-7", plan.Scenario)
	require.Len(t, plan.Operations, 3)

	assert.Equal(t, "create", plan.Operations[0].Op)
	assert.Equal(t, 1, *plan.Operations[0].ItemID)
	assert.Equal(t, "5", *plan.Operations[0].Discount)
	assert.Equal(t, "0", *plan.Operations[0].Rebate)

	assert.Equal(t, "create", plan.Operations[1].Op)
	assert.Equal(t, 2, *plan.Operations[1].ItemID)
	assert.Equal(t, "20", *plan.Operations[1].Discount)
	assert.Equal(t, "10", *plan.Operations[1].Rebate)

	assert.Equal(t, "delete", plan.Operations[2].Op)
	assert.Equal(t, 42, *plan.Operations[2].ID)
}

func TestPlanCommitLeavesNothingPending(t *testing.T) {
	out, _, err := run(t, "plan", "-f", scenarioFile, "--format", "json", "--commit")
	require.NoError(t, err)

	var plan report.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Empty(t, plan.Operations)
}

func TestPlanMarkdownAndMetrics(t *testing.T) {
	out, errOut, err := run(t, "plan", "-f", scenarioFile, "--format", "markdown", "--metrics", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "contract-7")
	assert.Contains(t, out, "3 pending operation(s)")
	assert.Contains(t, errOut, `pricetree_edits_total{kind="toggle_item",outcome="applied"} 1`)
}

func TestPlanRejectsMermaid(t *testing.T) {
	_, _, err := run(t, "plan", "-f", scenarioFile, "--format", "mermaid")
	assert.ErrorContains(t, err, "only supported by the tree command")
}

func TestTreeYAMLAndMermaid(t *testing.T) {
	out, _, err := run(t, "tree", "-f", scenarioFile, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "owner: item")
	assert.Contains(t, out, "selection: all")

	out, _, err = run(t, "tree", "-f", scenarioFile, "--format", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "class i1,i2 selected;")
}

func TestUnknownInputs(t *testing.T) {
	_, _, err := run(t, "tree", "-f", "does-not-exist.yaml", "--format", "json")
	assert.ErrorContains(t, err, "failed to read scenario")

	_, _, err = run(t, "tree", "-f", scenarioFile, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "tree", "-f", scenarioFile, "--format", "json", "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pricetree version ")
}

func TestPlanAgainstRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	out, _, err := run(t, "plan", "-f", scenarioFile, "--format", "json", "--commit", "--redis", mr.Addr())
	require.NoError(t, err)
	var plan report.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Empty(t, plan.Operations)

	assert.True(t, mr.Exists("pricetree:contract-7:assoc:43"))
	assert.False(t, mr.Exists("pricetree:contract-7:assoc:42"), "the deselected association is deleted")
	assert.False(t, mr.Exists("pricetree:contract-7:lock:commit:contract-7"), "the commit lock is released")

	// Replaying the script over the stored state deselects what the first run created.
	out, _, err = run(t, "plan", "-f", scenarioFile, "--format", "json", "--redis", mr.Addr())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Operations, 3)
	assert.Equal(t, "create", plan.Operations[0].Op)
	assert.Equal(t, 7, *plan.Operations[0].ItemID)
	assert.Equal(t, "delete", plan.Operations[1].Op)
	assert.Equal(t, 43, *plan.Operations[1].ID)
	assert.Equal(t, "delete", plan.Operations[2].Op)
	assert.Equal(t, 44, *plan.Operations[2].ID)
}

func TestRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := run(t, "tree", "-f", scenarioFile, "--format", "json", "--redis", addr)
	assert.ErrorContains(t, err, "failed to connect to redis")
}
