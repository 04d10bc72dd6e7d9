package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/pricetree/pkg/domain"
)

// PlanMarkdown renders the plan as a markdown table.
func PlanMarkdown(p Plan) string {
	var sb strings.Builder
	title := "Plan"
	if p.Scenario != "" {
		title = "Plan: " + p.Scenario
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if len(p.Operations) == 0 {
		sb.WriteString("_No changes._\n")
		return sb.String()
	}

	counts := map[string]int{}
	for _, op := range p.Operations {
		counts[op.Op]++
	}
	sb.WriteString(fmt.Sprintf("**%d** to create, **%d** to update, **%d** to delete.\n\n",
		counts["create"], counts["update"], counts["delete"]))

	sb.WriteString("| Op | Association | Item | Discount | Rebate |\n")
	sb.WriteString("|----|-------------|------|----------|--------|\n")
	for _, op := range p.Operations {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			op.Op, intCell(op.ID), intCell(op.ItemID), strCell(op.Discount), strCell(op.Rebate)))
	}
	return sb.String()
}

// TreeMarkdown renders the tree as nested headings with one table per category.
func TreeMarkdown(t Tree) string {
	var sb strings.Builder
	sb.WriteString("# Pricing tree\n")

	for _, seg := range t.Segments {
		sb.WriteString(fmt.Sprintf("\n## %s (%s)\n\n", heading(seg.Name, seg.ID), seg.Selection))
		if !seg.Pricing.IsEmpty() {
			sb.WriteString(fmt.Sprintf("Segment pricing: %s\n", pricingText(seg.Pricing)))
		}

		for _, cat := range seg.Categories {
			sb.WriteString(fmt.Sprintf("\n### %s (%s)\n\n", heading(cat.Name, cat.ID), cat.Selection))
			if !cat.Pricing.IsEmpty() {
				sb.WriteString(fmt.Sprintf("Category pricing: %s\n\n", pricingText(cat.Pricing)))
			}
			if cat.Filter != "" {
				sb.WriteString(fmt.Sprintf("Filter: `%s`\n\n", cat.Filter))
			}
			if len(cat.Items) == 0 {
				sb.WriteString("_No items._\n")
				continue
			}

			sb.WriteString("| Sel | Item | Discount | Rebate | Owner | Link |\n")
			sb.WriteString("|-----|------|----------|--------|-------|------|\n")
			for _, item := range cat.Items {
				mark := " "
				if item.Selected {
					mark = "x"
				}
				owner := string(item.Owner)
				if item.Dirty {
					owner += " *"
				}
				sb.WriteString(fmt.Sprintf("| [%s] | %s | %s | %s | %s | %s |\n",
					mark, heading(item.Name, item.ID), orDash(item.Pricing.Discount), orDash(item.Pricing.Rebate), owner, intCell(item.LinkID)))
			}
		}
	}
	return sb.String()
}

func heading(name string, id int) string {
	if name == "" {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%s #%d", name, id)
}

func pricingText(p domain.Pricing) string {
	return fmt.Sprintf("discount %s, rebate %s", orDash(p.Discount), orDash(p.Rebate))
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func strCell(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
