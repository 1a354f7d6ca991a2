package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vertti/hostprobe/pkg/api"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the environment and cgroup reports over HTTP",
	Long: `Serve the reports as JSON:

  GET /api/env      environment facts
  GET /api/cgroup   cgroup memory limit (status SKIP when there is none)
  GET /api/health   liveness
  GET /metrics      cgroup memory gauges in Prometheus format`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default: :8080)")
	rootCmd.AddCommand(serveCmd)
}

func newServer() *api.Server {
	return api.NewServer(environmentSection, cgroupSection, api.Options{
		OS:      hostInfo.OS(),
		Memory:  cgroupMemory,
		Version: Version,
	})
}

func runServe(_ *cobra.Command, _ []string) error {
	server := newServer()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		if err := server.Shutdown(); err != nil {
			log.Warnf("error during shutdown: %v", err)
		}
	}()

	log.Infof("serving on %s", cfg.Serve.Listen)
	return server.Start(cfg.Serve.Listen)
}
