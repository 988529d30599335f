package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// FallbackEURGHS is the hardcoded rate substituted when the exchange
// rate API is unavailable
const FallbackEURGHS = 17.05

// Snapshot is the callers' view of the poller: the last fetched rate,
// whether the first fetch is still in flight, and the last error
type Snapshot struct {
	Rate    *float64 `json:"rate"`
	Loading bool     `json:"loading"`
	Error   string   `json:"error,omitempty"`
}

// rateResponse is the exchangerate-api payload
type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Poller fetches the EUR to GHS rate once on start and on a fixed
// interval after that. There is no retry beyond the interval itself.
type Poller struct {
	url        string
	interval   time.Duration
	fallback   float64
	httpClient *http.Client
	logger     logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool

	mu      sync.Mutex
	rate    *float64
	loading bool
	lastErr string
}

// NewPoller creates an exchange rate poller
func NewPoller(url string, interval time.Duration, fallback float64, l logger.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())

	if fallback <= 0 {
		fallback = FallbackEURGHS
	}

	return &Poller{
		url:        url,
		interval:   interval,
		fallback:   fallback,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Named(l, "rates"),
		ctx:        ctx,
		cancel:     cancel,
		loading:    true,
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

	p.logger.Info("Exchange rate poller started", "interval", p.interval)
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
	p.logger.Info("Exchange rate poller stopped")
}

func (p *Poller) poll() {
	p.fetchOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.fetchOnce()
		}
	}
}

func (p *Poller) fetchOnce() {
	ctx, cancel := context.WithTimeout(p.ctx, 10*time.Second)
	defer cancel()

	rate, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading = false

	if err != nil {
		// The rate stays nil; callers substitute the fallback
		p.rate = nil
		p.lastErr = "Failed to fetch exchange rate"
		p.logger.Error("Error fetching exchange rate", "error", err)
		return
	}

	p.rate = &rate
	p.lastErr = ""
	p.logger.Debug("Exchange rate refreshed", "EUR_GHS", rate)
}

func (p *Poller) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)

	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)

	if err != nil {
		return 0, fmt.Errorf("failed to fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed rateResponse

	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	rate, ok := parsed.Rates["GHS"]

	if !ok || rate <= 0 {
		return 0, fmt.Errorf("GHS rate missing from response")
	}

	return rate, nil
}

// Snapshot returns the poller's current state
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot{
		Rate:    p.rate,
		Loading: p.loading,
		Error:   p.lastErr,
	}
}

// RateOrFallback returns the usable conversion rate. The second result
// is true when the hardcoded fallback was substituted; user-facing
// output must label such values as fallback figures.
func (p *Poller) RateOrFallback() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rate != nil {
		return *p.rate, false
	}

	return p.fallback, true
}
