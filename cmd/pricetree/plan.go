package main

import (
	"context"
	"fmt"

	"github.com/aretw0/pricetree/internal/presentation/report"
	"github.com/aretw0/pricetree/internal/presentation/tui"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the association changes produced by the edit script",
	Long: `Replays the scenario's edit script and prints the create, update and delete batches.

With --commit the batches are written to the store, the tree is rebuilt from what the store
then holds and the remaining plan is printed. The store is in-memory unless --redis is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, terminal, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		if format == report.FormatMermaid {
			return fmt.Errorf("format %q is only supported by the tree command", format)
		}

		commit, _ := cmd.Flags().GetBool("commit")
		s, err := openSession(cmd, commit)
		if err != nil {
			return err
		}
		defer s.Close()

		changes, err := s.editor.Changes()
		if err != nil {
			return err
		}
		if commit {
			if changes, err = s.commit(cmd.Context()); err != nil {
				return err
			}
		}

		plan := report.NewPlan(s.scenario.Name, s.editor.Snapshot().Version(), changes)
		switch format {
		case report.FormatMarkdown:
			if err := printMarkdown(cmd, report.PlanMarkdown(plan), terminal); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Summary(changes.Len()))
		default:
			if err := report.Encode(cmd.OutOrStdout(), format, plan); err != nil {
				return err
			}
		}
		return s.writeMetrics(cmd)
	},
}

// commit writes the pending changes to the target and reloads the tree from what it now
// holds, returning the changes still pending.
func (s *session) commit(ctx context.Context) (domain.ChangeSet, error) {
	if _, err := s.editor.Commit(ctx, s.target.store); err != nil {
		return domain.ChangeSet{}, err
	}

	stored, err := s.target.store.ListAssociations(ctx)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	in := s.scenario.Input
	in.Version = ""
	in.Associations = stored
	s.editor.Load(in)
	return s.editor.Changes()
}

func init() {
	rootCmd.AddCommand(planCmd)

	addScenarioFlags(planCmd)
	planCmd.Flags().Bool("commit", false, "Write the plan to the store and report what remains")
}
