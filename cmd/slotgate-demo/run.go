package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/fixture"
	"github.com/kailas-cloud/slotgate/internal/render"
	"github.com/kailas-cloud/slotgate/internal/usecase/compare"
	"github.com/kailas-cloud/slotgate/internal/usecase/gate"
)

// runOptions are the knobs of the run command.
type runOptions struct {
	Match         string
	FuzzyDistance int
	MockScore     float64
	MinScore      float64
	GateOnly      bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run <fixture.yaml>...",
	Short: "Compare similarity-only retrieval with the slot gate for each scenario",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := render.NewPrinter()
		p.NoColor = noColor
		return runScenarios(cmd.Context(), cmd.OutOrStdout(), p, logger, args, runOpts)
	},
}

func init() {
	runCmd.Flags().StringVar(&runOpts.Match, "match", "", "override the fixture's match strategy (exact, substring, fuzzy)")
	runCmd.Flags().IntVar(&runOpts.FuzzyDistance, "fuzzy-distance", match.DefaultFuzzyMaxDistance, "edit distance allowed by fuzzy matching")
	runCmd.Flags().Float64Var(&runOpts.MockScore, "mock-score", compare.DefaultMockScore, "similarity score for documents without one")
	runCmd.Flags().Float64Var(&runOpts.MinScore, "min-score", 0, "drop candidates scoring below this before gating")
	runCmd.Flags().BoolVar(&runOpts.GateOnly, "gate-only", false, "print gate verdicts without the similarity table")
}

func runScenarios(
	ctx context.Context, w io.Writer, p *render.Printer, logger *zap.Logger, paths []string, opts runOptions,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, path := range paths {
		sc, err := fixture.Load(path)
		if err != nil {
			return err
		}

		strategy := sc.Strategy()
		if opts.Match != "" {
			if strategy, err = match.ParseStrategy(opts.Match); err != nil {
				return err
			}
		}
		m, err := match.New(strategy, opts.FuzzyDistance)
		if err != nil {
			return err
		}
		g := gate.NewInstrumentedGate(gate.New(m), logger.With(zap.String("scenario", sc.Name())))

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "=== %s (%s) ===\n", sc.Name(), strategy)

		if opts.GateOnly {
			evals, err := g.EvaluateBatch(sc.Query(), sc.Documents())
			if err != nil {
				return fmt.Errorf("%s: %w", sc.Name(), err)
			}
			if err := p.Evaluations(w, sc.Query(), evals); err != nil {
				return err
			}
			continue
		}

		scorer := compare.FixedScorer{Scores: sc.Scores(), Default: opts.MockScore}
		rep, err := compare.New(scorer, g).Compare(ctx, sc.Query(), sc.Documents(), compare.Options{MinScore: opts.MinScore})
		if err != nil {
			return fmt.Errorf("%s: %w", sc.Name(), err)
		}
		if err := p.Report(w, rep); err != nil {
			return err
		}
	}
	return nil
}
