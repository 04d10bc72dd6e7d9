package main

import (
	"fmt"

	"github.com/aretw0/pricetree/internal/presentation/graph"
	"github.com/aretw0/pricetree/internal/presentation/report"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the pricing tree after the edit script",
	Long: `Replays the scenario's edit script and prints every segment, category and visible item
with its pricing, selection and owning level. --format mermaid outputs a flowchart (graph TD).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		defer s.Close()

		format, terminal, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		snap := s.editor.Snapshot()
		switch format {
		case report.FormatMermaid:
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(snap))
		case report.FormatMarkdown:
			if err := printMarkdown(cmd, report.TreeMarkdown(report.NewTree(snap)), terminal); err != nil {
				return err
			}
		default:
			if err := report.Encode(cmd.OutOrStdout(), format, report.NewTree(snap)); err != nil {
				return err
			}
		}
		return s.writeMetrics(cmd)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	addScenarioFlags(treeCmd)
}
