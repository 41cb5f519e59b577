package cmd

import (
	"context"
	"io"

	"github.com/chazu/solidkit/pkg/analysis"
	"github.com/chazu/solidkit/pkg/bench"
	"github.com/chazu/solidkit/pkg/report"
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/spf13/cobra"
)

var skipBench bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Analyze the built-in set of five solids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		solids, err := demoSolids()
		if err != nil {
			return err
		}
		return runReport(cmd, cmd.OutOrStdout(), solids, true)
	},
}

// demoSolids returns one named solid of every kind.
func demoSolids() ([]solid.Solid, error) {
	specs := []struct {
		kind        solid.Kind
		name, color string
		dims        []float64
	}{
		{solid.KindSphere, "Red Ball", "Crimson", []float64{5}},
		{solid.KindCube, "Blue Box", "Navy", []float64{4}},
		{solid.KindCylinder, "Green Tube", "Forest", []float64{3, 6}},
		{solid.KindRectangularPrism, "Yellow Block", "Gold", []float64{2, 4, 3}},
		{solid.KindCone, "Purple Peak", "Violet", []float64{4, 8}},
	}

	solids := make([]solid.Solid, 0, len(specs))
	for _, s := range specs {
		sol, err := solid.New(s.kind, s.name, s.color, s.dims...)
		if err != nil {
			return nil, err
		}
		solids = append(solids, sol)
	}
	return solids, nil
}

// runReport prints the full report for solids. The shape listing is shown
// when listShapes is set; timing is skipped with --no-bench.
func runReport(cmd *cobra.Command, w io.Writer, solids []solid.Solid, listShapes bool) error {
	p := report.New(w, cfg.Report.NameWidth)
	p.Header()

	if listShapes {
		p.Section("POLYMORPHISM DEMONSTRATION")
		p.Shapes(solids)
	}

	p.Section("COMPREHENSIVE ANALYSIS")
	p.Summary(solids)
	p.Analysis(analysis.Analyze(solids))

	if !skipBench && len(solids) > 0 {
		p.Section("PERFORMANCE COMPARISON")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		res, err := bench.Run(ctx, solids, bench.Options{
			Iterations: cfg.Bench.Iterations,
			Warmup:     cfg.Bench.Warmup,
			Log:        logger,
		})
		if err != nil {
			return err
		}
		p.Timing(res)
	}

	p.Closing(len(solids))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&skipBench, "no-bench", false, "skip the calculation timing section")
	rootCmd.AddCommand(demoCmd)
}
