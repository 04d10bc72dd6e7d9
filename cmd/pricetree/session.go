package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/internal/presentation/tui"
	"github.com/aretw0/pricetree/internal/scenario"
	"github.com/aretw0/pricetree/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const commitLockTTL = 30 * time.Second

// session is a loaded scenario with its edit script already replayed.
type session struct {
	scenario *scenario.Scenario
	editor   *pricetree.Editor
	target   *commitTarget
	registry *prometheus.Registry
	logger   *slog.Logger
}

// openSession loads the scenario and replays its edits.
//
// With --redis the persisted associations are read from the server instead of the scenario,
// seeding an empty contract with the scenario's own first. Otherwise, when commit is set, an
// in-memory store seeded the same way becomes the commit target.
func openSession(cmd *cobra.Command, commit bool) (*session, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("file")
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	target, err := openTarget(cmd, sc.Name)
	if err != nil {
		return nil, err
	}
	if target == nil && commit {
		target = memoryTarget()
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	opts := []pricetree.Option{
		pricetree.WithName(sc.Name),
		pricetree.WithLogger(logger),
		pricetree.WithLifecycleHooks(metrics.Hooks()),
	}

	s := &session{scenario: sc, target: target, registry: reg, logger: logger}
	if target != nil {
		if sc.Input.Associations, err = persisted(cmd.Context(), target.store, sc.Input.Associations); err != nil {
			s.Close()
			return nil, err
		}
		if target.locker != nil {
			opts = append(opts, pricetree.WithCommitLock(target.locker, commitLockTTL))
		}
	}

	s.editor = pricetree.New(opts...)
	s.editor.Load(sc.Input)
	if err := scenario.Apply(s.editor, sc.Edits); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the commit target.
func (s *session) Close() {
	if s.target == nil {
		return
	}
	if err := s.target.close(); err != nil {
		s.logger.Warn("failed to close store", "error", err)
	}
}

// writeMetrics dumps the session metrics to stderr when --metrics is set.
func (s *session) writeMetrics(cmd *cobra.Command) error {
	if on, _ := cmd.Flags().GetBool("metrics"); !on {
		return nil
	}
	return observability.WriteText(cmd.ErrOrStderr(), s.registry)
}

// printMarkdown renders markdown through glamour.
func printMarkdown(cmd *cobra.Command, md string, terminal bool) error {
	render, err := tui.NewRenderer(terminal)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "scenario.yaml", "Scenario file to load")
	cmd.Flags().String("redis", "", "Redis address (host:port) holding the contract's associations")
	cmd.Flags().Bool("metrics", false, "Write Prometheus metrics to stderr after the run")
}
