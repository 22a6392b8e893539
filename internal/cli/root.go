// Package cli implements the bempot command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// projectConfigPath overrides the project config location when set via the
// global --config flag.
var projectConfigPath string

var rootCmd = &cobra.Command{
	Use:   "bempot",
	Short: "Boundary-element potential evaluation",
	Long: `bempot evaluates boundary-element potentials: given a boundary quadrature
rule, a charge-distribution density, and a set of target points, it computes
the potential either by dense pairwise kernel evaluation or through a
compressed hierarchical-matrix operator.

Evaluation behavior is controlled by a layered configuration:
environment variables (BEMPOT_*) > .bempot/config.yml > user config > defaults.`,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectConfigPath, "config", "",
		"Path to project config file (default: .bempot/config.yml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
