// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/socctl/socctl/internal/config"
	"github.com/socctl/socctl/internal/log"
)

// Response is the collapsed result of a GET: body, headers and status code.
type Response struct {
	Body       []byte
	Header     http.Header
	StatusCode int
}

// apexLogger routes retryablehttp's internal logging to our debug level.
type apexLogger struct{}

func (apexLogger) Printf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// NewClient builds a retrying HTTP client with a bounded retry ceiling and
// exponential backoff. The ceiling comes from fetch.retries in the config,
// defaulting to 4.
func NewClient() *retryablehttp.Client {
	retries, _ := config.GetInt("fetch.retries", 4)

	c := retryablehttp.NewClient()
	c.RetryMax = retries
	c.RetryWaitMin = 1 * time.Second
	c.RetryWaitMax = 30 * time.Second
	c.Logger = apexLogger{}
	return c
}

// Get performs a GET with bounded retries and returns the full response.
// Non-2xx statuses that are not retryable (e.g. 403) are returned to the
// caller rather than treated as errors, since some callers need the status
// and headers.
func Get(ctx context.Context, url string) (*Response, error) {
	return GetWith(ctx, NewClient(), url)
}

// GetWith is Get with a caller-supplied client, mainly for tests.
func GetWith(ctx context.Context, c *retryablehttp.Client, url string) (*Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debugf("fetched: url=%s status=%d bytes=%d", url, resp.StatusCode, doc.Len())

	return &Response{
		Body:       doc.Bytes(),
		Header:     resp.Header,
		StatusCode: resp.StatusCode,
	}, nil
}
