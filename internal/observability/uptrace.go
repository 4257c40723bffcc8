package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry providers. Both the api and
// the worker export under the same service name; the worker adds a role
// attribute.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noopShutdown, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("nfl.season_timezone", cfg.NFLTimezone),
			attribute.String("job.dispatch_mode", cfg.JobDispatchMode),
		),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "service_version", cfg.ServiceVersion)

	return uptrace.Shutdown, nil
}
