package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/labeleval/internal/evaluation"
	"github.com/DjordjeVuckovic/labeleval/internal/router"
	"github.com/DjordjeVuckovic/labeleval/internal/server"
	"github.com/DjordjeVuckovic/labeleval/internal/spec"
	pkgserver "github.com/DjordjeVuckovic/labeleval/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluations over HTTP",
		Long: `Start the HTTP API. POST /api/v1/evaluations runs an evaluation using the
spec named by LABELEVAL_SPEC, or a request spec whose files live under
LABELEVAL_DATA_DIR. Request specs cannot name connections or output files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return fmt.Errorf("load server config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			appCfg, err := loadAppEnv()
			if err != nil {
				return err
			}

			var defaultSpec *spec.EvalSpec
			var checks []pkgserver.CheckFunc
			if cfg.SpecPath != "" {
				defaultSpec, err = loadSpec(cfg.SpecPath, appCfg)
				if err != nil {
					return fmt.Errorf("load default spec: %w", err)
				}
				runsDir := defaultSpec.Runs.Dir
				checks = append(checks, func(context.Context) error {
					_, err := os.Stat(runsDir)
					return err
				})
				slog.Info("default spec loaded", "path", cfg.SpecPath)
			}

			s := server.New(cfg, pkgserver.NewFuncHealthChecker(checks...)).
				SetupMiddlewares().
				SetupErrorHandler().
				SetupHealthChecks("/health")

			s.Echo.GET("/", func(c echo.Context) error {
				return c.String(200, "labeleval API is running")
			})

			if cfg.DataDir == "" {
				slog.Info("request specs disabled, set LABELEVAL_DATA_DIR to enable them")
			}
			router.NewEvaluationRouter(s.Echo, evaluation.NewService(version), router.Options{
				DefaultSpec: defaultSpec,
				DataDir:     cfg.DataDir,
				PgConn:      appCfg.PgConn,
			}).Bind()

			return s.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port (overrides LABELEVAL_PORT)")
	return cmd
}
