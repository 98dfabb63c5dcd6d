// file: cmd/serve.go
// version: 1.0.0
// guid: 3e9a7c15-b2d4-4f68-8a01-6c5e9d2b4f73

package cmd

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper, cfg *config.Config) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the autofill HTTP server",
		Long:  `Start the HTTP server exposing GET /, GET /api/health, GET /metrics and POST /api/autofill.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v, *cfg)
		},
	}

	serveCmd.Flags().String("port", "", "port to run the web server on (env PORT, default 5000)")
	serveCmd.Flags().String("host", "", "host to bind the web server to (default 0.0.0.0)")
	serveCmd.Flags().String("read-timeout", "", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "", "write timeout (e.g. 30s, 1m)")
	serveCmd.Flags().String("idle-timeout", "", "idle timeout (e.g. 60s, 2m)")
	serveCmd.Flags().StringSlice("allowed-origins", nil, "browser origins allowed to call the API")

	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("host", serveCmd.Flags().Lookup("host"))
	_ = v.BindPFlag("read_timeout", serveCmd.Flags().Lookup("read-timeout"))
	_ = v.BindPFlag("write_timeout", serveCmd.Flags().Lookup("write-timeout"))
	_ = v.BindPFlag("idle_timeout", serveCmd.Flags().Lookup("idle-timeout"))
	_ = v.BindPFlag("allowed_origins", serveCmd.Flags().Lookup("allowed-origins"))

	return serveCmd
}

func runServe(ctx context.Context, v *viper.Viper, cfg config.Config) error {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	watchLogLevel(v)

	agg, err := newAggregator(ctx, cfg)
	if err != nil {
		return err
	}

	logging.Info("starting bookstreamer",
		"addr", cfg.Addr(),
		"summarizer", agg.SummarizerName(),
		"cover_source", agg.CoverSourceName(),
		"allowed_origins", cfg.AllowedOrigins,
	)

	srvCfg := server.NewServerConfig(cfg)
	return server.NewServer(srvCfg, agg).Start(ctx, srvCfg)
}

// watchLogLevel applies log_level edits to the config file while serving.
// Other settings still need a restart.
func watchLogLevel(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString("log_level")
		logging.SetLogLevel(level)
		logging.Info("config file changed", "path", e.Name, "log_level", level)
	})
	v.WatchConfig()
}
