package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"blackflag.dev/pitwall/internal/config"
	"blackflag.dev/pitwall/internal/log"
	"blackflag.dev/pitwall/internal/metrics"
	"blackflag.dev/pitwall/internal/pipeline"
	"blackflag.dev/pitwall/internal/source/udp"
)

var listenPort int

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Decode the live telemetry stream",
	Long: `
Listen for telemetry datagrams from the game and decode them until
interrupted.

Examples:
  pitwall listen                  # Listen on 0.0.0.0:20777 with default sinks
  pitwall listen -c config.yml    # Listen with the sinks from config.yml
  pitwall listen -p 20778         # Override the UDP port
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("failed to load config", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Listen.Port = listenPort
		}
		if err := log.Init(cfg.Log); err != nil {
			exitWithError("failed to initialize logging", err)
		}

		src := udp.NewSource(udp.Config{
			Host:       cfg.Listen.Host,
			Port:       cfg.Listen.Port,
			Multicast:  cfg.Listen.Multicast,
			ReadBuffer: cfg.Listen.ReadBuffer,
		})
		p, err := pipeline.Build(cfg, src)
		if err != nil {
			exitWithError("failed to build pipeline", err)
		}

		ctx := context.Background()
		var ms *metrics.Server
		if cfg.Metrics.Enabled {
			ms = metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
			if err := ms.Start(ctx); err != nil {
				exitWithError("failed to start metrics server", err)
			}
		}

		if err := p.Start(ctx); err != nil {
			exitWithError("failed to start pipeline", err)
		}

		waitForShutdown(p)

		if err := p.Stop(); err != nil {
			log.GetLogger().WithError(err).Error("pipeline stop failed")
		}
		if ms != nil {
			if err := ms.Stop(ctx); err != nil {
				log.GetLogger().WithError(err).Error("metrics server stop failed")
			}
		}
	},
}

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 20777, "UDP port the game publishes to")
	rootCmd.AddCommand(listenCmd)
}
