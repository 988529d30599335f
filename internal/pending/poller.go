package pending

import (
	"context"
	"sync"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// Counter is the slice of the backend API the poller consumes
type Counter interface {
	GetPendingOrderCount(ctx context.Context) (int, error)
}

// Poller keeps a cached count of orders awaiting approval, refreshed on
// a fixed interval for the navbar badge
type Poller struct {
	backend  Counter
	interval time.Duration
	logger   logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool

	mu    sync.Mutex
	count int
}

// NewPoller creates a pending-order count poller
func NewPoller(backend Counter, interval time.Duration, l logger.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())

	return &Poller{
		backend:  backend,
		interval: interval,
		logger:   logger.Named(l, "pending"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start fetches once immediately and then keeps polling until Stop
func (p *Poller) Start() {
	p.mu.Lock()

	if p.running {
		p.mu.Unlock()
		return
	}

	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		p.poll()
	}()

	p.logger.Info("Pending order poller started", "interval", p.interval)
}

// Stop cancels the polling loop and waits for it to exit
func (p *Poller) Stop() {
	p.mu.Lock()

	if !p.running {
		p.mu.Unlock()
		return
	}

	p.running = false
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.logger.Info("Pending order poller stopped")
}

func (p *Poller) poll() {
	p.refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

func (p *Poller) refresh() {
	ctx, cancel := context.WithTimeout(p.ctx, 15*time.Second)
	defer cancel()

	count, err := p.backend.GetPendingOrderCount(ctx)

	if err != nil {
		// Keep the last known count; the next tick tries again
		p.logger.Error("Failed to fetch pending order count", "error", err)
		return
	}

	p.mu.Lock()
	p.count = count
	p.mu.Unlock()
}

// Count returns the last successfully fetched count
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
