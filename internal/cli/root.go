package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/token-demo/internal/config"
	"github.com/spec-kit/token-demo/internal/observability"
	"github.com/spec-kit/token-demo/internal/report"
	"github.com/spec-kit/token-demo/internal/service"
	apperrors "github.com/spec-kit/token-demo/pkg/util/errorutil"
)

// NewRootCommand builds the tokendemo command. It accepts no arguments;
// behaviour is driven by environment configuration with defaults that issue
// an HS256 token for the admin user Marmont valid for one hour.
func NewRootCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "tokendemo",
		Short: "Issue a signed JWT for a demo user and verify it",
		Long: `tokendemo generates a fresh HMAC signing key, issues a JWT for a
single in-memory user, prints it, then verifies the token with the same key
and prints the recovered claims as JSON.

Environment:
  TOKEN_ALGORITHM  HS256 | HS384 | HS512 (default HS256)
  TOKEN_TTL        token lifetime (default 1h)
  DEMO_USERNAME    user name (default Marmont)
  DEMO_ROLE        ADMIN | USER (default ADMIN)
  LOG_LEVEL        zap level (default info)
  LOG_OUTPUT       log destination (default stderr)
  METRICS_FILE     write run counters in Prometheus text format (default off)`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	logger.Debug("configuration loaded",
		zap.String("algorithm", cfg.Token.Algorithm),
		zap.Int64("ttl_ms", cfg.Token.TTLMillis()),
		zap.String("metrics_file", cfg.Metrics.File),
	)

	metrics := observability.NewMetrics()
	svc, err := service.NewDemoService(*cfg, service.DemoDependencies{
		Reporter: report.NewReporter(out),
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("invalid configuration", zap.String("code", apperrors.ToDomainError(err).Code), zap.Error(err))
		return err
	}

	if err := svc.Run(ctx); err != nil {
		logger.Error("token demo failed", zap.String("code", apperrors.ToDomainError(err).Code), zap.Error(err))
		return err
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteToTextfile(cfg.Metrics.File); err != nil {
			logger.Error("metrics export failed", zap.String("path", cfg.Metrics.File), zap.Error(err))
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug("metrics written", zap.String("path", cfg.Metrics.File))
	}
	return nil
}
