// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"github.com/dgraph-io/ristretto"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"io"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://api.pwnedpasswords.com"
	DefaultCacheSize = 4 << 20
	DefaultRetryMax  = 3
	prefixLen        = 5
)

type Config struct {
	// BaseURL of the Pwned Passwords API, without the /range path.
	BaseURL string
	// CacheSize is the max amount of hash suffixes kept across all cached ranges. 0 disables the cache.
	CacheSize int64
	RetryMax  int
}

// Client counts how many times a password was seen in breaches using the k-anonymity range API:
// only the first 5 hex characters of the SHA-1 hash ever leave the process.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   *ristretto.Cache
	stat    *status
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    initHttpClient(cfg.RetryMax),
		stat:    newStatus(),
	}

	if cfg.CacheSize > 0 {
		// A range holds ~800 suffixes, ristretto wants 10x the expected amount of cached items as counters
		counters := 10 * (cfg.CacheSize / 800)
		if counters < 100 {
			counters = 100
		}

		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: counters,
			MaxCost:     cfg.CacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating range cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

func initHttpClient(retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// The default logger prints every request, the request URL contains the hash prefix.
	client.Logger = nil
	client.RetryMax = retryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second

	client.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS13,
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		},
	}

	return client
}

// BreachCount returns the number of times password appears in the Pwned Passwords corpus, 0 when it
// was never seen.
func (c *Client) BreachCount(ctx context.Context, password string) (int, error) {
	prefix, suffix := hashParts(password)

	counts, err := c.rangeCounts(ctx, prefix)
	if err != nil {
		return 0, err
	}

	return counts[suffix], nil
}

// Close releases the range cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// LogStats prints the request statistics gathered so far at debug level.
func (c *Client) LogStats() {
	c.stat.Report()
}

// hashParts splits the upper-case hex SHA-1 of password into the range prefix and the suffix to look for.
func hashParts(password string) (string, string) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	return hash[:prefixLen], hash[prefixLen:]
}

func (c *Client) rangeCounts(ctx context.Context, prefix string) (map[string]int, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(prefix); ok {
			c.stat.CacheHit()
			return cached.(map[string]int), nil
		}
	}

	data, err := c.downloadRange(ctx, prefix)
	if err != nil {
		return nil, err
	}

	counts, err := parseRange(data)
	if err != nil {
		return nil, fmt.Errorf("error reading range %s: %w", prefix, err)
	}

	if c.cache != nil {
		c.cache.Set(prefix, counts, int64(len(counts)))
		c.cache.Wait()
	}

	return counts, nil
}

func (c *Client) rangeHttpRequest(ctx context.Context, prefix string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", c.baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "pwd-autopsy/1.0")
	// Padding hides the real size of the response from anyone watching the wire
	req.Header.Set("Add-Padding", "true")
	return req, nil
}

func (c *Client) downloadRange(ctx context.Context, prefix string) ([]byte, error) {
	timer := time.Now()
	req, err := c.rangeHttpRequest(ctx, prefix)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.stat.RequestFailed()
		return nil, fmt.Errorf("error querying range %s: %w", prefix, err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
		}
	}(res.Body)

	if res.StatusCode >= 400 {
		c.stat.RequestFailed()
		return nil, fmt.Errorf("request for range %s failed with status [%d] %s", prefix, res.StatusCode, res.Status)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		c.stat.RequestFailed()
		return nil, err
	}

	c.stat.RequestComplete(res, time.Since(timer).Milliseconds())
	return resBody, nil
}

// parseRange reads the SUFFIX:COUNT lines of a range response. Lines that do not follow the format
// are skipped.
func parseRange(data []byte) (map[string]int, error) {
	counts := make(map[string]int)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), ":", 2)
		if len(parts) != 2 {
			continue
		}

		count, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Debug().Msgf("skipping malformed range line with suffix %s", parts[0])
			continue
		}
		counts[strings.ToUpper(parts[0])] = count
	}

	return counts, scanner.Err()
}
