package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second, logger.NopLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	return c, srv
}

func TestDo_MapsServerMessageToRemoteError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "Stock cannot be negative"}`))
	}))

	_, err := c.GetOrder(context.Background(), "ord-1")

	if err == nil {
		t.Fatalf("expected error")
	}

	if !apperrors.IsRemote(err) {
		t.Fatalf("error not classified as remote: %v", err)
	}

	if got := apperrors.UserMessage(err); got != "Stock cannot be negative" {
		t.Fatalf("user message = %q, want server message", got)
	}

	if apperrors.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", apperrors.StatusCode(err))
	}
}

func TestDo_MissingMessageFallsBackToGeneric(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.GetOrder(context.Background(), "ord-1")

	if err == nil {
		t.Fatalf("expected error")
	}

	if got := apperrors.UserMessage(err); got == "" {
		t.Fatalf("expected a non-empty user message")
	}
}

func TestDo_RefreshesAndReplaysOnceOn401(t *testing.T) {
	var orderCalls, refreshCalls int32

	mux := http.NewServeMux()

	mux.HandleFunc("/orders/ord-1", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&orderCalls, 1)

		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if got := r.Header.Get("Authorization"); got != "Bearer refreshed-token" {
			t.Errorf("replayed request Authorization = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order": {"_id": "ord-1", "orderStatus": "Pending"}}`))
	})

	mux.HandleFunc("/users/refresh_auth", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken": "refreshed-token"}`))
	})

	c, _ := newTestClient(t, mux)
	c.SetAccessToken("stale-token")

	order, err := c.GetOrder(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}

	if order.ID != "ord-1" {
		t.Fatalf("order id = %q", order.ID)
	}

	if atomic.LoadInt32(&orderCalls) != 2 {
		t.Fatalf("order endpoint called %d times, want 2", orderCalls)
	}

	if atomic.LoadInt32(&refreshCalls) != 1 {
		t.Fatalf("refresh called %d times, want 1", refreshCalls)
	}

	if c.AccessToken() != "refreshed-token" {
		t.Fatalf("refreshed token not stored")
	}
}

func TestDo_SecondUnauthorizedPropagates(t *testing.T) {
	var orderCalls int32

	mux := http.NewServeMux()

	mux.HandleFunc("/orders/ord-1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&orderCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	mux.HandleFunc("/users/refresh_auth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken": "new-token"}`))
	})

	c, _ := newTestClient(t, mux)

	_, err := c.GetOrder(context.Background(), "ord-1")

	if !apperrors.IsAuthExpired(err) {
		t.Fatalf("error = %v, want auth expired", err)
	}

	// Exactly one replay, never a nested retry loop
	if atomic.LoadInt32(&orderCalls) != 2 {
		t.Fatalf("order endpoint called %d times, want 2", orderCalls)
	}
}

func TestDo_FailedRefreshPropagatesAuthError(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/orders/ord-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	mux.HandleFunc("/users/refresh_auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.GetOrder(context.Background(), "ord-1")

	if !apperrors.IsAuthExpired(err) {
		t.Fatalf("error = %v, want auth expired", err)
	}
}

func TestDo_TransportFailureClassified(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := c.GetOrder(context.Background(), "ord-1")

	if err == nil {
		t.Fatalf("expected transport error")
	}

	if apperrors.IsRemote(err) || apperrors.IsAuthExpired(err) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
}

func TestLogin_StoresAccessToken(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accessToken": "tok-1", "user": {"_id": "u1", "email": "a@b.c"}}`))
	})

	c, _ := newTestClient(t, mux)

	resp, err := c.Login(context.Background(), nil)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.AccessToken != "tok-1" || c.AccessToken() != "tok-1" {
		t.Fatalf("token not stored: %+v", resp)
	}
}

func TestInvoicePDFURL(t *testing.T) {
	c, srv := newTestClient(t, http.NewServeMux())

	want := srv.URL + "/invoices/files/invoice_inv-9.pdf"

	if got := c.InvoicePDFURL("inv-9"); got != want {
		t.Fatalf("InvoicePDFURL = %q, want %q", got, want)
	}
}
