package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/tree"
)

// GenerateMermaid produces a Mermaid flowchart of the pricing tree.
// It applies semantic styling:
// - Segment: ((Circle))
// - Category: [[Subroutine]]
// - Item: [Rectangle]
// Nodes holding pricing are labelled with it, and items are classed by selection,
// dirty and inherited state.
func GenerateMermaid(s *tree.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var selected, dirty, inherited []string
	for _, seg := range s.Segments() {
		segID := fmt.Sprintf("s%d", seg.ID)
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", segID, label(seg.Name, seg.ID, seg.Pricing)))

		cats, _ := s.Categories(seg.ID)
		for _, cat := range cats {
			catID := fmt.Sprintf("c%d", cat.ID)
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", catID, label(cat.Name, cat.ID, cat.Pricing)))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", segID, catID))

			items, _ := s.Items(seg.ID, cat.ID)
			for _, item := range items {
				itemID := fmt.Sprintf("i%d", item.ID)
				sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", itemID, label(item.Name, item.ID, item.Pricing)))

				arrow := "-->"
				if item.Inherited {
					arrow = "-.->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", catID, arrow, itemID))

				if item.Selected {
					selected = append(selected, itemID)
				}
				if item.Dirty {
					dirty = append(dirty, itemID)
				}
				if item.Inherited {
					inherited = append(inherited, itemID)
				}
			}
		}
	}

	if len(selected)+len(dirty)+len(inherited) > 0 {
		sb.WriteString("\n    %% State Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef dirty stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef inherited stroke-dasharray: 5 5;\n")
		writeClass(&sb, "selected", selected)
		writeClass(&sb, "dirty", dirty)
		writeClass(&sb, "inherited", inherited)
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, class string, ids []string) {
	if len(ids) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), class))
}

func label(name string, id int, p domain.Pricing) string {
	text := fmt.Sprintf("#%d", id)
	if name != "" {
		text = fmt.Sprintf("%s #%d", sanitize(name), id)
	}
	if !p.IsEmpty() {
		text += fmt.Sprintf(" <br/> %s / %s", orDash(p.Discount), orDash(p.Rebate))
	}
	return text
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// sanitize escapes double quotes for Mermaid labels.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
