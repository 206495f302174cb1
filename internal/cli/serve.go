package cli

import (
	"github.com/spf13/cobra"

	"github.com/waterants/sketchcoach/internal/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the drawing feedback HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /submit   multipart form: user_id, task_id, image, optional strokes
  GET  /task     current drawing prompt
  GET  /healthz  liveness and version

Settings come from defaults, the --config file, the environment (HOST, PORT,
SKETCHCOACH_*) and finally the flags below. The server shuts down gracefully
on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, store, err := c.newRunner(ctx, cfg, cfg.CacheOptions())
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Debug("configuration loaded",
				"addr", cfg.Addr(),
				"cache", cfg.Cache.Backend,
				"static_dir", cfg.StaticDir,
				"max_upload_bytes", cfg.MaxUploadBytes,
			)

			srv := server.New(server.Options{
				Addr:            cfg.Addr(),
				AllowedOrigin:   cfg.AllowedOrigin,
				StaticDir:       cfg.StaticDir,
				MaxUploadBytes:  cfg.MaxUploadBytes,
				ShutdownTimeout: cfg.ShutdownTimeout,
				Prompt:          cfg.Prompt,
			}, runner, logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")

	return cmd
}
