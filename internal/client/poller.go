package client

import (
	"context"
	"log"
	"sync"
	"time"
)

type unreadFetcher interface {
	UnreadCount(ctx context.Context) (int, error)
}

// UnreadPoller keeps the unread-notifications badge current. It polls
// on a fixed interval, refreshes immediately on demand after a
// mark-read, and keeps the last good count when a poll fails.
type UnreadPoller struct {
	fetcher  unreadFetcher
	interval time.Duration

	mu    sync.Mutex
	count int

	refresh chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewUnreadPoller(fetcher unreadFetcher) *UnreadPoller {
	return &UnreadPoller{
		fetcher:  fetcher,
		interval: 60 * time.Second,
		refresh:  make(chan struct{}, 1),
	}
}

// Start launches the polling loop. The first poll happens right away,
// not after the first tick.
func (p *UnreadPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.poll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			case <-p.refresh:
				p.poll(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (p *UnreadPoller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Refresh requests an immediate poll, typically right after marking a
// notification read. Non-blocking: if a refresh is already queued this
// is a no-op.
func (p *UnreadPoller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

func (p *UnreadPoller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *UnreadPoller) poll(ctx context.Context) {
	count, err := p.fetcher.UnreadCount(ctx)
	if err != nil {
		// Stale badge beats a flickering one.
		log.Printf("⚠️ Unread poll failed: %v", err)
		return
	}

	p.mu.Lock()
	p.count = count
	p.mu.Unlock()
}
