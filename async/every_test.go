package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sgryphon/cortex/async"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

func TestEveryRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	i := int32(0)
	done := async.RunEvery(ctx, "counter", 100*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&i, 1)
		return nil
	})

	// Sleep for a bit and ensure the value has increased.
	time.Sleep(250 * time.Millisecond)
	require.NotEqual(t, int32(0), atomic.LoadInt32(&i), "Counter failed to increment with ticker")

	cancel()
	<-done
	last := atomic.LoadInt32(&i)

	// Sleep for a bit and ensure the value has not increased.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, last, atomic.LoadInt32(&i), "Counter incremented after stop")
}

func TestEveryRuns_LogsErrors(t *testing.T) {
	hook := logTest.NewGlobal()
	ctx, cancel := context.WithCancel(context.Background())

	done := async.RunEvery(ctx, "failing", 20*time.Millisecond, func(context.Context) error {
		return errors.New("boom")
	})
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done
	require.LogsContain(t, hook, "Periodic run failed")
}
