package cmd

import (
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/chazu/solidkit/pkg/tui"
	"github.com/spf13/cobra"
)

var withDemo bool

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Create solids in an interactive form, then analyze them",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := interactiveRegistry(withDemo)
		if err != nil {
			return err
		}
		created, err := tui.Run(reg)
		if err != nil {
			return err
		}
		logger.WithField("created", len(created)).
			WithField("total", reg.Len()).
			Debug("interactive session finished")
		return runReport(cmd, cmd.OutOrStdout(), reg.All(), false)
	},
}

// interactiveRegistry returns the registry a session starts from: empty,
// or holding the demo solids when seed is set.
func interactiveRegistry(seed bool) (*solid.Registry, error) {
	reg := solid.NewRegistry()
	if !seed {
		return reg, nil
	}
	solids, err := demoSolids()
	if err != nil {
		return nil, err
	}
	for _, s := range solids {
		reg.Add(s)
	}
	return reg, nil
}

func init() {
	interactiveCmd.Flags().BoolVar(&withDemo, "with-demo", false, "start with the five demo solids already created")
	rootCmd.AddCommand(interactiveCmd)
}
