package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/pricetree/internal/presentation/report"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/tree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func snapshot(t *testing.T) *tree.Snapshot {
	t.Helper()
	snap := tree.Build(domain.Input{
		Segments:   []domain.Segment{{ID: 1, Name: "Hardware"}},
		Categories: []domain.Category{{ID: 10, ParentSegmentID: 1, Name: "Fasteners"}},
		Items: []domain.Item{
			{ID: 100, ParentCategoryID: 10, Name: "Bolt"},
			{ID: 101, ParentCategoryID: 10, Name: "Nut"},
		},
		Associations: []domain.ExistingAssociation{
			{ID: 7, ItemID: 101, Discount: decimal.NewNullDecimal(decimal.NewFromInt(3))},
		},
	})
	snap, err := snap.ToggleItem(1, 10, 100)
	require.NoError(t, err)
	snap, err = snap.SetItemPricing(1, 10, 100, domain.Pricing{Discount: "12.5"})
	require.NoError(t, err)
	return snap
}

func TestNewPlan(t *testing.T) {
	cs := domain.ChangeSet{
		Creates: []domain.CreateAssociation{{ItemID: 100, Discount: decimal.NewNullDecimal(decimal.RequireFromString("12.5"))}},
		Updates: []domain.UpdateAssociation{{ID: 7, ItemID: 101, Rebate: decimal.NewNullDecimal(decimal.NewFromInt(2))}},
		Deletes: []domain.DeleteAssociation{{ID: 9}},
	}

	plan := report.NewPlan("demo", 4, cs)
	require.Len(t, plan.Operations, 3)

	assert.Equal(t, "create", plan.Operations[0].Op)
	assert.Nil(t, plan.Operations[0].ID)
	assert.Equal(t, 100, *plan.Operations[0].ItemID)
	assert.Equal(t, "12.5", *plan.Operations[0].Discount)
	assert.Nil(t, plan.Operations[0].Rebate)

	assert.Equal(t, "update", plan.Operations[1].Op)
	assert.Equal(t, 7, *plan.Operations[1].ID)
	assert.Equal(t, "2", *plan.Operations[1].Rebate)

	assert.Equal(t, "delete", plan.Operations[2].Op)
	assert.Equal(t, 9, *plan.Operations[2].ID)
	assert.Nil(t, plan.Operations[2].ItemID)
}

func TestPlanMarkdown(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		md := report.PlanMarkdown(report.NewPlan("", 0, domain.ChangeSet{}))
		assert.Contains(t, md, "# Plan\n")
		assert.Contains(t, md, "_No changes._")
	})

	t.Run("Rows", func(t *testing.T) {
		cs := domain.ChangeSet{
			Creates: []domain.CreateAssociation{{ItemID: 100, Discount: decimal.NewNullDecimal(decimal.NewFromInt(5))}},
			Deletes: []domain.DeleteAssociation{{ID: 9}},
		}
		md := report.PlanMarkdown(report.NewPlan("demo", 1, cs))
		assert.Contains(t, md, "# Plan: demo")
		assert.Contains(t, md, "**1** to create, **0** to update, **1** to delete.")
		assert.Contains(t, md, "| create | - | 100 | 5 | - |")
		assert.Contains(t, md, "| delete | 9 | - | - | - |")
	})
}

func TestNewTree(t *testing.T) {
	doc := report.NewTree(snapshot(t))
	require.Len(t, doc.Segments, 1)
	seg := doc.Segments[0]
	assert.Equal(t, "all", seg.Selection)
	require.Len(t, seg.Categories, 1)

	items := seg.Categories[0].Items
	require.Len(t, items, 2)

	assert.Equal(t, 100, items[0].ID)
	assert.True(t, items[0].Dirty)
	assert.Equal(t, domain.LevelItem, items[0].Owner)
	assert.Nil(t, items[0].LinkID)

	assert.Equal(t, 101, items[1].ID)
	assert.Equal(t, "3", items[1].Pricing.Discount)
	require.NotNil(t, items[1].LinkID)
	assert.Equal(t, 7, *items[1].LinkID)
}

func TestNewTreeHonoursFilter(t *testing.T) {
	snap, err := snapshot(t).SetItemFilter(1, 10, "nut")
	require.NoError(t, err)

	cat := report.NewTree(snap).Segments[0].Categories[0]
	assert.Equal(t, "nut", cat.Filter)
	require.Len(t, cat.Items, 1)
	assert.Equal(t, 101, cat.Items[0].ID)
}

func TestTreeMarkdown(t *testing.T) {
	md := report.TreeMarkdown(report.NewTree(snapshot(t)))
	assert.Contains(t, md, "## Hardware #1 (all)")
	assert.Contains(t, md, "### Fasteners #10 (all)")
	assert.Contains(t, md, "| [x] | Bolt #100 | 12.5 | - | item * | - |")
	assert.Contains(t, md, "| [x] | Nut #101 | 3 | - | item | 7 |")
}

func TestEncode(t *testing.T) {
	plan := report.NewPlan("demo", 2, domain.ChangeSet{
		Deletes: []domain.DeleteAssociation{{ID: 9}},
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Encode(&buf, report.FormatJSON, plan))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "demo", got["scenario"])
		ops := got["operations"].([]any)
		require.Len(t, ops, 1)
		assert.Equal(t, "delete", ops[0].(map[string]any)["op"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Encode(&buf, report.FormatYAML, plan))

		var got report.Plan
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, uint64(2), got.Version)
		require.Len(t, got.Operations, 1)
		assert.Equal(t, 9, *got.Operations[0].ID)
	})

	t.Run("Markdown is not an encoding", func(t *testing.T) {
		assert.Error(t, report.Encode(&bytes.Buffer{}, report.FormatMarkdown, plan))
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    report.Format
		wantErr bool
	}{
		{in: "markdown", want: report.FormatMarkdown},
		{in: "MD", want: report.FormatMarkdown},
		{in: "json", want: report.FormatJSON},
		{in: "yml", want: report.FormatYAML},
		{in: "mermaid", want: report.FormatMermaid},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
