package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"blackflag.dev/pitwall/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pitwall %s\n", version.Version)
		fmt.Printf("  commit:     %s\n", version.GitSHA)
		fmt.Printf("  built:      %s\n", version.BuildTime)
		fmt.Printf("  go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
