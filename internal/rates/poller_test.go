package rates

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

func waitForFetch(t *testing.T, p *Poller) Snapshot {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		snap := p.Snapshot()

		if !snap.Loading {
			return snap
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("poller never completed its first fetch")
	return Snapshot{}
}

func TestPoller_FetchesRateOnStart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base": "EUR", "rates": {"GHS": 16.42, "USD": 1.08}}`))
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Hour, FallbackEURGHS, logger.NopLogger())
	p.Start()
	defer p.Stop()

	snap := waitForFetch(t, p)

	if snap.Rate == nil {
		t.Fatalf("rate is nil after successful fetch")
	}

	if *snap.Rate != 16.42 {
		t.Fatalf("rate = %v, want 16.42", *snap.Rate)
	}

	if snap.Error != "" {
		t.Fatalf("unexpected error: %q", snap.Error)
	}

	rate, fallback := p.RateOrFallback()

	if fallback {
		t.Fatalf("fallback substituted despite a live rate")
	}

	if rate != 16.42 {
		t.Fatalf("RateOrFallback = %v, want 16.42", rate)
	}
}

func TestPoller_FailedFetchSubstitutesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Hour, FallbackEURGHS, logger.NopLogger())
	p.Start()
	defer p.Stop()

	snap := waitForFetch(t, p)

	if snap.Rate != nil {
		t.Fatalf("rate = %v, want nil after failed fetch", *snap.Rate)
	}

	if snap.Error != "Failed to fetch exchange rate" {
		t.Fatalf("error = %q", snap.Error)
	}

	rate, fallback := p.RateOrFallback()

	if !fallback {
		t.Fatalf("fallback not flagged")
	}

	if rate != FallbackEURGHS {
		t.Fatalf("fallback rate = %v, want %v", rate, FallbackEURGHS)
	}
}

func TestPoller_MissingGHSRateTreatedAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base": "EUR", "rates": {"USD": 1.08}}`))
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Hour, FallbackEURGHS, logger.NopLogger())
	p.Start()
	defer p.Stop()

	snap := waitForFetch(t, p)

	if snap.Rate != nil {
		t.Fatalf("rate = %v, want nil", *snap.Rate)
	}
}

func TestPoller_LoadingUntilFirstFetch(t *testing.T) {
	p := NewPoller("http://127.0.0.1:0", time.Hour, FallbackEURGHS, logger.NopLogger())

	if snap := p.Snapshot(); !snap.Loading {
		t.Fatalf("poller not loading before Start")
	}

	rate, fallback := p.RateOrFallback()

	if !fallback || rate != FallbackEURGHS {
		t.Fatalf("RateOrFallback before first fetch = (%v, %v)", rate, fallback)
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"GHS": 17.0}}`))
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, 10*time.Millisecond, FallbackEURGHS, logger.NopLogger())
	p.Start()
	waitForFetch(t, p)

	p.Stop()
	p.Stop()
}
