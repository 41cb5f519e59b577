package cmd

import (
	"fmt"

	"github.com/chazu/solidkit/pkg/report"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	meshCells    int
	meshKernel   string
	withScene    bool
	showAccuracy bool
)

var meshCmd = &cobra.Command{
	Use:   "mesh [script]",
	Short: "Tessellate the solids of a script and write STL files",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if meshCells != 0 && meshCells < 8 {
			return fmt.Errorf("invalid --cells %d: must be at least 8", meshCells)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if meshCells != 0 {
			cfg.Mesh.Cells = meshCells
		}
		if meshKernel != "" {
			cfg.Mesh.Kernel = meshKernel
		}
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
		if res.Registry.Len() == 0 {
			return fmt.Errorf("%s: script created no solids", args[0])
		}

		paths, err := app.Export(res.Registry, outputDir, withScene)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wrote %s to %s\n", english.Plural(len(paths), "STL file", ""), outputDir)
		for _, p := range paths {
			fmt.Fprintf(out, "  %s\n", p)
		}
		fmt.Fprintln(out)

		if showAccuracy {
			devs, err := app.Accuracy(res.Registry)
			if err != nil {
				return err
			}
			report.New(out, cfg.Report.NameWidth).Deviations(devs)
		}
		return nil
	},
}

func init() {
	meshCmd.Flags().StringVarP(&outputDir, "output", "o", "out", "directory for the STL files")
	meshCmd.Flags().IntVar(&meshCells, "cells", 0, "marching cubes resolution (default from config)")
	meshCmd.Flags().StringVar(&meshKernel, "kernel", "", "geometry kernel: sdfx or manifold (default from config)")
	meshCmd.Flags().BoolVar(&withScene, "scene", true, "also write scene.stl with every solid side by side")
	meshCmd.Flags().BoolVar(&showAccuracy, "accuracy", false, "compare mesh volume and area with the exact values")
	rootCmd.AddCommand(meshCmd)
}
