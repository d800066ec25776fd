package httpclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(WithBaseDelay(time.Millisecond))
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1", attempts.Load())
	}
}

func TestDoRetriesTransientStatus(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(WithBaseDelay(time.Millisecond))
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
}

func TestDoDoesNotRetryClientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(WithBaseDelay(time.Millisecond))
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	// A 404 is the upstream's answer, not a transient fault.
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1", attempts.Load())
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(WithMaxRetries(2), WithBaseDelay(time.Millisecond))
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)

	_, err := client.Do(req)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	var retryErr *RetryableError
	if !errors.As(err, &retryErr) {
		t.Fatalf("expected RetryableError, got %T", err)
	}
	if retryErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d", retryErr.StatusCode)
	}
	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want initial + 2 retries", attempts.Load())
	}
}

func TestDoTransportError(t *testing.T) {
	client := New(WithMaxRetries(0))
	req, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1:1", nil)

	if _, err := client.Do(req); err == nil {
		t.Fatal("expected a transport error")
	}
}
