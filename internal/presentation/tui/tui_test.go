package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/pricetree/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererPlainStyle(t *testing.T) {
	render, err := tui.NewRenderer(false)
	require.NoError(t, err)

	out, err := render("# Plan\n\n| Op | Item |\n|----|------|\n| create | 100 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan")
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "100")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestSummary(t *testing.T) {
	assert.Contains(t, tui.Summary(0), "nothing to commit")
	assert.Contains(t, tui.Summary(3), "3 pending operation(s)")
}
