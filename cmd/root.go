// Package cmd implements CLI commands using the cobra framework.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"blackflag.dev/pitwall/internal/pipeline"
	"blackflag.dev/pitwall/internal/version"

	// Register the built-in sinks so the configuration can pick them
	// by name.
	_ "blackflag.dev/pitwall/internal/sink/console"
	_ "blackflag.dev/pitwall/internal/sink/stats"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Pitwall - UDP telemetry decoder for the 2019 racing game",
	Long: `Pitwall decodes the UDP telemetry stream published by the 2019 racing
game. It understands every packet of the 2019 specification (motion, session,
lap data, events, participants, car setups, telemetry and car status) and
hands the decoded structs to the configured sinks.

Modes:
  listen    decode the live stream from the game
  replay    run a recorded pcap capture through the same decode path
  validate  check a configuration file and print the effective settings

Configuration is read from a YAML file under the 'pitwall:' root key;
PITWALL_* environment variables override individual keys.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (defaults and PITWALL_* environment apply without one)")
}

// waitForShutdown blocks until the pipeline finishes on its own or a
// shutdown signal arrives.
func waitForShutdown(p *pipeline.Pipeline) {
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
	case <-done:
	}
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
