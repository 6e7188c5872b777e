package state

import "github.com/ethereum/go-ethereum/event"

// Notifier interface defines the methods of the service that provides state updates to consumers.
type Notifier interface {
	StateFeed() *event.Feed
}

// FeedNotifier is a Notifier backed by a single feed.
type FeedNotifier struct {
	feed event.Feed
}

// NewNotifier returns a notifier with an empty feed.
func NewNotifier() *FeedNotifier {
	return &FeedNotifier{}
}

// StateFeed returns the feed events are sent on.
func (n *FeedNotifier) StateFeed() *event.Feed {
	return &n.feed
}
