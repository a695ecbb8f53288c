package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blackflag.dev/pitwall/internal/config"
	"blackflag.dev/pitwall/internal/log"
	"blackflag.dev/pitwall/internal/pipeline"
	"blackflag.dev/pitwall/internal/source/pcapfile"
)

var (
	replayPort     int
	replayRealtime bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture.pcap>",
	Short: "Replay a packet capture through the decoder",
	Long: `
Replay a pcap capture of game traffic through the same decode path as a
live session.

Examples:
  pitwall replay quali.pcap                # Replay as fast as possible
  pitwall replay quali.pcap --realtime     # Keep the original packet timing
  pitwall replay quali.pcap -p 20778       # Capture used a non-default port
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("failed to load config", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Replay.Port = replayPort
		}
		if cmd.Flags().Changed("realtime") {
			cfg.Replay.Realtime = replayRealtime
		}
		if err := log.Init(cfg.Log); err != nil {
			exitWithError("failed to initialize logging", err)
		}

		if err := runReplay(cfg, args[0], os.Stdout); err != nil {
			exitWithError("replay failed", err)
		}
	},
}

func runReplay(cfg *config.Config, path string, out io.Writer) error {
	src := pcapfile.NewSource(pcapfile.Config{
		Path:     path,
		Port:     cfg.Replay.Port,
		Realtime: cfg.Replay.Realtime,
	})
	p, err := pipeline.Build(cfg, src)
	if err != nil {
		return err
	}

	if err := p.Start(context.Background()); err != nil {
		return err
	}
	waitForShutdown(p)
	if err := p.Stop(); err != nil {
		return err
	}

	stats := p.Stats()
	fmt.Fprintf(out, "replayed %d packets: %d decoded, %d decode errors, %d dropped\n",
		stats.Received, stats.Decoded, stats.DecodeErrors, stats.Dropped)
	return nil
}

func init() {
	replayCmd.Flags().IntVarP(&replayPort, "port", "p", 20777, "UDP port the capture was recorded on")
	replayCmd.Flags().BoolVar(&replayRealtime, "realtime", false, "replay with the capture's original timing")
	rootCmd.AddCommand(replayCmd)
}
