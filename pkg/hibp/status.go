// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"net/http"
	"sync/atomic"
	"time"
)

type status struct {
	requests                   uint64
	failedRequests             uint64
	cacheHits                  uint64
	cloudflareHits             uint64
	cloudflareMisses           uint64
	cloudflareRequestTimeTotal uint64
	start                      time.Time
}

func newStatus() *status {
	return &status{start: time.Now()}
}

func (s *status) RequestComplete(res *http.Response, millis int64) {
	atomic.AddUint64(&s.cloudflareRequestTimeTotal, uint64(millis))
	atomic.AddUint64(&s.requests, 1)

	if cacheHit := res.Header.Get("CF-Cache-Status"); cacheHit == "HIT" {
		atomic.AddUint64(&s.cloudflareHits, 1)
	} else {
		atomic.AddUint64(&s.cloudflareMisses, 1)
	}
}

func (s *status) RequestFailed() {
	atomic.AddUint64(&s.failedRequests, 1)
}

func (s *status) CacheHit() {
	atomic.AddUint64(&s.cacheHits, 1)
}

func (s *status) Report() {
	requests := atomic.LoadUint64(&s.requests)
	hits := atomic.LoadUint64(&s.cloudflareHits)
	misses := atomic.LoadUint64(&s.cloudflareMisses)

	var requestAverage, hitPercent float64
	if requests > 0 {
		requestAverage = float64(atomic.LoadUint64(&s.cloudflareRequestTimeTotal)) / float64(requests)
		hitPercent = float64(hits*100) / float64(requests)
	}

	p := message.NewPrinter(language.English)
	log.Debug().Msgf("made %s range requests in %v (%s failed, %s served from local cache). Average response time %.2f ms",
		p.Sprintf("%d", requests), time.Since(s.start), p.Sprintf("%d", atomic.LoadUint64(&s.failedRequests)),
		p.Sprintf("%d", atomic.LoadUint64(&s.cacheHits)), requestAverage)
	log.Debug().Msgf("cloudflare cache hits: %s (%.2f%%), misses: %s",
		p.Sprintf("%d", hits), hitPercent, p.Sprintf("%d", misses))
}
