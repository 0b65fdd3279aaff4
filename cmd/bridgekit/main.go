package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	bridgekit "github.com/optlayer/bridgekit-go"
	"github.com/optlayer/bridgekit-go/contracts"
	"github.com/optlayer/bridgekit-go/internal/memmodel"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "bridgekit",
		Short:   "Inspect optimization models through the bridging layer",
		Version: version,
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	inspectCmd := &cobra.Command{
		Use:   "inspect <scenario.yaml>",
		Short: "Build a scenario through the layer and report reconciled vs raw totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			model := memmodel.New()
			layer := bridgekit.Wrap(model,
				bridgekit.WithLogger(logger),
				bridgekit.WithDefaultBridges(),
			)
			if _, err := scenario.Build(layer); err != nil {
				return fmt.Errorf("building scenario: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
			fmt.Fprintf(out, "variables: %d visible, %d in underlying model\n",
				layer.NumberOfVariables(), model.NumberOfVariables())

			fmt.Fprintln(out, "visible constraint types:")
			for _, key := range layer.ListConstraintTypes() {
				fmt.Fprintf(out, "  %-40s %d\n", key, layer.NumberOfConstraints(key))
				for _, ci := range layer.ListConstraintIndices(key) {
					name, err := layer.GetConstraintAttribute(contracts.ConstraintName, ci)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "    [%d] %v\n", ci, name)
				}
			}

			fmt.Fprintln(out, "underlying constraint types:")
			for _, key := range model.ListConstraintTypes() {
				fmt.Fprintf(out, "  %-40s %d\n", key, model.NumberOfConstraints(key))
			}
			return nil
		},
	}

	rootCmd.AddCommand(inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
