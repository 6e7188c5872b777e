package state_test

import (
	"testing"

	"github.com/sgryphon/cortex/beacon-chain/core/feed"
	statefeed "github.com/sgryphon/cortex/beacon-chain/core/feed/state"
	"github.com/sgryphon/cortex/testing/assert"
	"github.com/sgryphon/cortex/testing/require"
)

func TestFeedNotifier_DeliversEvents(t *testing.T) {
	n := statefeed.NewNotifier()
	ch := make(chan *feed.Event, 1)
	sub := n.StateFeed().Subscribe(ch)
	defer sub.Unsubscribe()

	sent := n.StateFeed().Send(&feed.Event{
		Type: statefeed.EpochProcessed,
		Data: &statefeed.EpochProcessedData{Epoch: 4},
	})
	require.Equal(t, 1, sent)
	ev := <-ch
	assert.Equal(t, feed.EventType(statefeed.EpochProcessed), ev.Type)
	data, ok := ev.Data.(*statefeed.EpochProcessedData)
	require.Equal(t, true, ok)
	assert.Equal(t, uint64(4), uint64(data.Epoch))
}

func TestFeedNotifier_NoSubscribers(t *testing.T) {
	n := statefeed.NewNotifier()
	assert.Equal(t, 0, n.StateFeed().Send(&feed.Event{Type: statefeed.SlotProcessed}))
}
