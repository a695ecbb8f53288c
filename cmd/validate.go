package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"blackflag.dev/pitwall/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and print the effective settings",
	Long: `
Validate the configuration without starting a pipeline. Defaults and
PITWALL_* environment variables are layered in, so the output is exactly
what listen and replay would run with.

Examples:
  pitwall validate                  # Check defaults and environment only
  pitwall validate -c config.yml    # Check a configuration file
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(configFile, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
	},
}

func runValidate(path string, out io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	rendered, err := yaml.Marshal(map[string]*config.Config{"pitwall": cfg})
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Fprintf(out, "VALID: %d sink(s), listening on %s:%d\n%s",
		len(cfg.Sinks), cfg.Listen.Host, cfg.Listen.Port, rendered)
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
