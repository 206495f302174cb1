package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/waterants/sketchcoach/pkg/observability"
)

// logHooks reports pipeline and cache events as debug log lines, so
// --verbose shows cache behaviour without a metrics backend.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

func (h logHooks) OnAnalyzeComplete(_ context.Context, id string, d time.Duration, err error) {
	h.logger.Debug("analysis finished", "submission", id, "duration", d.Round(time.Microsecond), "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var registerHooks sync.Once

// installLogHooks registers logHooks for the process. Only the first
// logger wins; later calls are no-ops.
func installLogHooks(logger *log.Logger) {
	registerHooks.Do(func() {
		h := logHooks{logger: logger}
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
	})
}
