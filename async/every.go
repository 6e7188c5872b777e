// Package async includes helpers for scheduling periodic work.
package async

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "async")

// RunEvery runs f every period until ctx is done. Errors returned by f are
// logged under name and do not stop the loop. The returned channel is closed
// once the loop has exited.
func RunEvery(ctx context.Context, name string, period time.Duration, f func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(period)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.WithField("function", name).Trace("Running")
				if err := f(ctx); err != nil {
					log.WithError(err).WithField("function", name).Error("Periodic run failed")
				}
			case <-ctx.Done():
				log.WithField("function", name).Debug("Context is closed, exiting")
				return
			}
		}
	}()
	return done
}
