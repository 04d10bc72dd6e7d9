package scenario_test

import (
	"testing"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/internal/scenario"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	sc, err := scenario.Load("testdata/contract.yaml")
	require.NoError(t, err)

	assert.Equal(t, "contract-7", sc.Name)
	assert.Len(t, sc.Input.Segments, 2)
	assert.Len(t, sc.Input.Categories, 3)
	assert.Len(t, sc.Input.Items, 4)
	require.Len(t, sc.Input.Associations, 1)
	assert.True(t, sc.Input.Associations[0].Discount.Decimal.Equal(decimal.NewFromInt(15)))
	assert.False(t, sc.Input.Associations[0].Rebate.Valid)

	require.Len(t, sc.Edits, 4)
	assert.Equal(t, scenario.Edit{Op: domain.EditSegmentPricing, Segment: 1, Discount: "20", Rebate: "10"}, sc.Edits[0])
	assert.Equal(t, "0", sc.Edits[1].Rebate, "numbers decode weakly into pricing strings")
}

func TestApply(t *testing.T) {
	sc, err := scenario.Load("testdata/contract.yaml")
	require.NoError(t, err)

	ed := pricetree.New()
	ed.Load(sc.Input)
	require.NoError(t, scenario.Apply(ed, sc.Edits))

	changes, err := ed.Changes()
	require.NoError(t, err)
	require.Len(t, changes.Creates, 2)
	assert.Equal(t, 1, changes.Creates[0].ItemID)
	assert.True(t, changes.Creates[0].Discount.Decimal.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, changes.Creates[1].ItemID)
	assert.True(t, changes.Creates[1].Discount.Decimal.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, []domain.DeleteAssociation{{ID: 42}}, changes.Deletes)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"missing op":    "edits:\n  - segment: 1\n",
		"unknown field": "edits:\n  - op: toggle_segment\n    segmnet: 1\n",
		"bad yaml":      "segments: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
segments: [{id: 1}]
categories: [{id: 10, parent_segment_id: 1}]
items: [{id: 1, parent_category_id: 10}]
edits:
  - {op: toggle_item, segment: 1, category: 10, item: 1}
  - {op: segment_pricing, segment: 1, discount: "abc"}
  - {op: toggle_item, segment: 1, category: 10, item: 1}
`))
	require.NoError(t, err)

	ed := pricetree.New()
	ed.Load(sc.Input)
	err = scenario.Apply(ed, sc.Edits)
	assert.ErrorIs(t, err, domain.ErrInvalidPricing)
	assert.Contains(t, err.Error(), "edit 2")
	assert.Equal(t, uint64(1), ed.Snapshot().Version())

	err = scenario.Apply(ed, []scenario.Edit{{Op: "explode"}})
	assert.ErrorContains(t, err, "unknown op")
}
