package cli

import (
	"fmt"

	"github.com/gridwave/bempot/internal/version"
	"github.com/spf13/cobra"
)

// SourceURL is the canonical home of the bempot source.
const SourceURL = "https://github.com/gridwave/bempot"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if version.IsDevBuild() {
			fmt.Fprintf(out, "bempot %s (development build)\n", version.Version)
		} else {
			fmt.Fprintf(out, "bempot %s\n", version.Version)
		}
		fmt.Fprintf(out, "commit: %s\n", version.Commit)
		fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Print the source repository URL",
	Long:  "Print the URL of the bempot source repository.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), SourceURL)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sourceCmd)
}
