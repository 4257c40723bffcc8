package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
)

// Runtime holds the process-wide telemetry started for one binary.
type Runtime struct {
	logger        *logging.Logger
	stopTracing   func(context.Context) error
	stopProfiling func() error
	pprof         *http.Server
}

// Start brings up tracing, continuous profiling and the pprof listener.
// Anything already started is torn down again when a later step fails.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	var err error
	if rt.stopTracing, err = InitUptrace(cfg, logger); err != nil {
		return nil, err
	}
	if rt.stopProfiling, err = InitPyroscope(cfg, logger); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	if rt.pprof, err = StartPprofServer(cfg, logger); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}

	return rt, nil
}

// Shutdown flushes spans and stops profilers in reverse start order.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	var errs []error
	if rt.pprof != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		errs = append(errs, StopPprofServer(rt.pprof, rt.logger, timeout))
	}
	if rt.stopProfiling != nil {
		errs = append(errs, rt.stopProfiling())
	}
	if rt.stopTracing != nil {
		errs = append(errs, rt.stopTracing(ctx))
	}
	return errors.Join(errs...)
}
