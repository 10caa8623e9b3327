// Package detect provides a client for the external AI detection service
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "geotwin/internal/platform/errors"
	"geotwin/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "geotwin-api"

	// errBodyCap limits how much of an upstream error body gets logged
	errBodyCap = 2 << 10
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal JSON client for the detection service
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// RunRequest asks the service to run the named models over a lidar file
type RunRequest struct {
	LidarID string   `json:"lidar_id"`
	Models  []string `json:"models"`
}

// RunResponse is the service acknowledgement for a queued detection
type RunResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("detect"),
		now:  time.Now,
	}
}

// Run submits a detection request and returns the service job handle
// no retries here, callers decide whether resubmitting is safe
func (c *Client) Run(ctx context.Context, in RunRequest) (RunResponse, error) {
	var out RunResponse
	if c.opts.BaseURL == "" {
		return out, perr.Upstreamf("detect service url not configured")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUnknown, "detect encode request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUnknown, "detect new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUpstream, "detect service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("lidar_id", in.LidarID).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("detect run")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyCap))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("detect service rejected run")
		return out, perr.Upstreamf("detect service returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeUpstream, "detect decode response failed")
	}
	if out.JobID == "" {
		return out, perr.Upstreamf("detect service returned empty job id")
	}
	return out, nil
}

// Ping checks the service health endpoint
func (c *Client) Ping(ctx context.Context) error {
	if c.opts.BaseURL == "" {
		return perr.Upstreamf("detect service url not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/health", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "detect new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "detect service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return perr.Upstreamf("detect health returned %d", resp.StatusCode)
	}
	return nil
}
