package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/pkg/adapters/memory"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	ed := pricetree.New(pricetree.WithLifecycleHooks(m.Hooks()))

	in := domain.Input{
		Segments:   []domain.Segment{{ID: 1}},
		Categories: []domain.Category{{ID: 10, ParentSegmentID: 1}},
		Items:      []domain.Item{{ID: 1, ParentCategoryID: 10}, {ID: 2, ParentCategoryID: 10}},
	}
	ed.Load(in)

	require.NoError(t, ed.ToggleCategory(1, 10))
	require.NoError(t, ed.SetSegmentPricing(1, "5", ""))
	require.Error(t, ed.SetSegmentPricing(1, "five", ""))
	require.Error(t, ed.ToggleSegment(9))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("toggle_category", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("segment_pricing", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("segment_pricing", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Edits.WithLabelValues("toggle_segment", "rejected")))

	_, err := ed.Commit(context.Background(), memory.NewRepository())
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Pending.WithLabelValues("create")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Committed.WithLabelValues("create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Failures))

	in.Version = "next"
	ed.Load(in)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Rebuilds))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Discarded))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	m.Rebuilds.Inc()

	var sb strings.Builder
	require.NoError(t, observability.WriteText(&sb, reg))
	assert.Contains(t, sb.String(), "# TYPE pricetree_rebuilds_total counter")
	assert.Contains(t, sb.String(), "pricetree_rebuilds_total 1")
}
