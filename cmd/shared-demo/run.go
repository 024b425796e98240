package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/shared"
	"github.com/AnatoleLucet/shared/host"
	"github.com/AnatoleLucet/shared/internal/demo"
	"github.com/AnatoleLucet/shared/metrics"
)

func runCmd() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo, reading commands from stdin",
		Long: `Run the demo, reading one command per line from stdin:

  inc          click the increment button
  set N        set the counter to N
  user NAME    type NAME in the user input
  clear        clear the user input
  unmount N    unmount the N-th counter display
  show         print the rendered components
  quit         stop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := demo.LoadConfig(configPath)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			collector := metrics.New(metrics.WithRegistry(reg))

			if metricsAddr != "" {
				ln, err := net.Listen("tcp", metricsAddr)
				if err != nil {
					return fmt.Errorf("listen metrics: %w", err)
				}
				defer ln.Close()

				server := &http.Server{Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
				go func() {
					if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server stopped", "error", err)
					}
				}()
				defer server.Close()

				logger.Info("serving metrics", "addr", ln.Addr().String())
			}

			app := demo.New(
				host.NewRoot(host.WithLogger(logger)),
				cfg,
				shared.WithLogger(logger),
				shared.WithMonitor(collector),
			)
			defer app.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", app.Root.Text())

			return demo.NewSession(app, out).Run(cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}
