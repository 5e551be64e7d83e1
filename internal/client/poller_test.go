package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubFetcher struct {
	mu     sync.Mutex
	counts []int
	err    error
	polled chan struct{}
}

func newStubFetcher(counts ...int) *stubFetcher {
	return &stubFetcher{counts: counts, polled: make(chan struct{}, 16)}
}

func (s *stubFetcher) UnreadCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.polled <- struct{}{} }()

	if s.err != nil {
		return 0, s.err
	}
	count := s.counts[0]
	if len(s.counts) > 1 {
		s.counts = s.counts[1:]
	}
	return count, nil
}

func waitForPoll(t *testing.T, s *stubFetcher) {
	t.Helper()
	select {
	case <-s.polled:
	case <-time.After(time.Second):
		t.Fatal("poller never fetched")
	}
}

func TestUnreadPoller(t *testing.T) {
	t.Run("First poll happens on Start, not after the first tick", func(t *testing.T) {
		fetcher := newStubFetcher(3)
		p := NewUnreadPoller(fetcher)

		p.Start(context.Background())
		defer p.Stop()

		waitForPoll(t, fetcher)
		assert.Eventually(t, func() bool { return p.Count() == 3 },
			time.Second, 5*time.Millisecond)
	})

	t.Run("Refresh forces an immediate re-poll", func(t *testing.T) {
		fetcher := newStubFetcher(5, 4)
		p := NewUnreadPoller(fetcher)

		p.Start(context.Background())
		defer p.Stop()

		waitForPoll(t, fetcher)

		// The badge drops right after a mark-read, without waiting out
		// the minute.
		p.Refresh()
		waitForPoll(t, fetcher)

		assert.Eventually(t, func() bool { return p.Count() == 4 },
			time.Second, 5*time.Millisecond)
	})

	t.Run("Failed poll keeps the last good count", func(t *testing.T) {
		fetcher := newStubFetcher(7)
		p := NewUnreadPoller(fetcher)

		p.Start(context.Background())
		defer p.Stop()

		waitForPoll(t, fetcher)
		assert.Eventually(t, func() bool { return p.Count() == 7 },
			time.Second, 5*time.Millisecond)

		fetcher.mu.Lock()
		fetcher.err = context.DeadlineExceeded
		fetcher.mu.Unlock()

		p.Refresh()
		waitForPoll(t, fetcher)

		assert.Equal(t, 7, p.Count())
	})

	t.Run("Stop ends the loop", func(t *testing.T) {
		fetcher := newStubFetcher(1)
		p := NewUnreadPoller(fetcher)

		p.Start(context.Background())
		waitForPoll(t, fetcher)
		p.Stop()

		select {
		case <-p.done:
		case <-time.After(time.Second):
			t.Fatal("poller did not stop")
		}
	})
}
