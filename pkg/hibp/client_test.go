// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"

func rangeServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		if r.Header.Get("Add-Padding") != "true" {
			t.Errorf("range request should ask for padding")
		}

		switch r.URL.Path {
		case "/range/5BAA6":
			_, _ = fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:0\r\n%s:9659365\r\nnot a line\r\n", passwordSuffix)
		case "/range/FFFFF":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = fmt.Fprint(w, "0018A45C4D1DEF81644B54AB7F969B88D65:3\r\n")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHashParts(t *testing.T) {
	prefix, suffix := hashParts("password")
	if prefix != "5BAA6" {
		t.Errorf("prefix: %s, want: %s", prefix, "5BAA6")
	}
	if suffix != passwordSuffix {
		t.Errorf("suffix: %s, want: %s", suffix, passwordSuffix)
	}
}

func TestParseRange(t *testing.T) {
	data := []byte("00AB:12\r\nabcd:7\r\nbroken\r\nFFFF:nope\r\n\r\nEEEE:0")
	counts, err := parseRange(data)
	if err != nil {
		t.Fatalf("parseRange should not fail: %s", err)
	}

	want := map[string]int{"00AB": 12, "ABCD": 7, "EEEE": 0}
	if len(counts) != len(want) {
		t.Errorf("parseRange: %v, want: %v", counts, want)
	}
	for suffix, count := range want {
		if got, ok := counts[suffix]; !ok || got != count {
			t.Errorf("parseRange[%s]: %d, want: %d", suffix, got, count)
		}
	}
}

func TestClient_BreachCount(t *testing.T) {
	var hits int64
	srv := rangeServer(t, &hits)

	client, err := NewClient(Config{BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient should not fail: %s", err)
	}
	defer client.Close()

	count, err := client.BreachCount(context.Background(), "password")
	if err != nil {
		t.Fatalf("BreachCount should not fail: %s", err)
	}
	if count != 9659365 {
		t.Errorf("BreachCount(password): %d, want: %d", count, 9659365)
	}

	count, err = client.BreachCount(context.Background(), "1mag@saG(@31*sasd.")
	if err != nil {
		t.Fatalf("BreachCount should not fail: %s", err)
	}
	if count != 0 {
		t.Errorf("BreachCount of an unseen password: %d, want: 0", count)
	}
}

func TestClient_Cache(t *testing.T) {
	var hits int64
	srv := rangeServer(t, &hits)

	client, err := NewClient(Config{BaseURL: srv.URL, CacheSize: DefaultCacheSize})
	if err != nil {
		t.Fatalf("NewClient should not fail: %s", err)
	}
	defer client.Close()

	for i := 0; i < 3; i++ {
		count, err := client.BreachCount(context.Background(), "password")
		if err != nil {
			t.Fatalf("BreachCount should not fail: %s", err)
		}
		if count != 9659365 {
			t.Errorf("BreachCount(password): %d, want: %d", count, 9659365)
		}
	}

	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("range should be requested once, was requested %d times", got)
	}
	if got := atomic.LoadUint64(&client.stat.cacheHits); got != 2 {
		t.Errorf("cache hits: %d, want: 2", got)
	}
}

func TestClient_Errors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	var hits int64
	notFound := rangeServer(t, &hits)

	cases := []struct {
		name     string
		baseURL  string
		password string
	}{
		{"server error", failing.URL, "password"},
		{"unreachable", "http://127.0.0.1:1", "password"},
	}

	for _, tc := range cases {
		client, err := NewClient(Config{BaseURL: tc.baseURL, RetryMax: 0})
		if err != nil {
			t.Fatalf("NewClient should not fail: %s", err)
		}

		if _, err = client.BreachCount(context.Background(), tc.password); err == nil {
			t.Errorf("BreachCount(%s) should fail", tc.name)
		}
		client.Close()
	}

	client, err := NewClient(Config{BaseURL: notFound.URL})
	if err != nil {
		t.Fatalf("NewClient should not fail: %s", err)
	}
	defer client.Close()

	if _, err = client.downloadRange(context.Background(), "FFFFF"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("downloadRange of a missing range should fail with the status, got: %v", err)
	}
}

func TestClient_Canceled(t *testing.T) {
	var hits int64
	srv := rangeServer(t, &hits)

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient should not fail: %s", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err = client.BreachCount(ctx, "password"); err == nil {
		t.Errorf("BreachCount with a canceled context should fail")
	}
}
