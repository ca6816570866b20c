package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "monthcal/internal/log"
)

// CaptureFunc performs one capture.
type CaptureFunc func(ctx context.Context, opts Options) error

// Schedule runs capture on the standard 5-field cron spec until ctx is
// canceled. Overlapping runs are skipped rather than queued. The returned
// channel is closed once the scheduler has stopped and any running
// capture has returned.
func Schedule(ctx context.Context, spec string, opts Options, capture CaptureFunc) (<-chan struct{}, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		started := time.Now()
		if err := capture(ctx, opts); err != nil {
			appLog.Error("scheduled capture failed", err, "url", opts.URL)
			return
		}
		appLog.Info("scheduled capture written", "path", opts.OutputPath, "elapsed", time.Since(started))
	})
	if err != nil {
		return nil, fmt.Errorf("capture: invalid schedule %q: %w", spec, err)
	}

	c.Start()
	appLog.Info("capture scheduler started", "cron", spec, "url", opts.URL)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		appLog.Info("capture scheduler stopped")
		close(done)
	}()
	return done, nil
}
