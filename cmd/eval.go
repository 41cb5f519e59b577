package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var listShapes bool

var evalCmd = &cobra.Command{
	Use:   "eval [script]",
	Short: "Run a solid script and analyze the solids it creates",
	Long: `Evaluate a Lisp script such as

  (def ball (sphere :name "Red Ball" :color "Crimson" :radius 5))
  (cube :name "Blue Box" :side 4)

and print the summary, analysis and timing report for the solids it created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := NewApp(cfg, logger)
		if err != nil {
			return err
		}
		res, err := app.EvaluateFile(args[0])
		if err != nil {
			return err
		}
		if !res.OK() {
			return reportEvalErrors(cmd.ErrOrStderr(), args[0], res)
		}
		return runReport(cmd, cmd.OutOrStdout(), res.Registry.All(), listShapes)
	},
}

// reportEvalErrors prints every script error and returns a summary error.
func reportEvalErrors(w io.Writer, path string, res EvalResult) error {
	for _, e := range res.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "%s:%d: %s\n", path, e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", path, e.Message)
		}
	}
	return fmt.Errorf("%s: %d error(s)", path, len(res.Errors))
}

func init() {
	evalCmd.Flags().BoolVarP(&listShapes, "list", "l", false, "list every shape before the summary")
	rootCmd.AddCommand(evalCmd)
}
