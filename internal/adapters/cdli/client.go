// Package cdli fetches and parses artifact search results from the CDLI corpus site
package cdli

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/logger"
)

const (
	baseURLDefault   = "https://cdli.mpiwg-berlin.mpg.de"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "akkadian-search"
	defaultMaxRetry  = 3
	defaultRetryBase = 400 * time.Millisecond
	maxBodyBytes     = 8 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client searches the corpus for Akkadian artifacts that carry a transliteration
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("cdli"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// BaseURL returns the host used for searches and absolute links
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// SearchURL builds the search page url for term
func (c *Client) SearchURL(term string) string {
	q := url.Values{}
	q.Set("simple-value[]", term)
	q.Set("simple-field[]", "keyword")
	q.Set("f[language][]", "Akkadian")
	q.Set("f[atf_transliteration][]", "With")
	return c.opts.BaseURL + "/search?" + q.Encode()
}

// Search fetches the result page for term and parses every artifact card
func (c *Client) Search(ctx context.Context, term string) ([]Artifact, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, perr.InvalidArgf("search term is required")
	}
	body, err := c.get(ctx, c.SearchURL(term))
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	out, err := Parse(io.LimitReader(body, maxBodyBytes), c.opts.BaseURL)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "cdli parse failed")
	}
	c.log.Debug().Str("term", term).Int("artifacts", len(out)).Msg("cdli search done")
	return out, nil
}

// get issues a GET with retries on transport errors and transient statuses
func (c *Client) get(ctx context.Context, u string) (io.ReadCloser, error) {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeTimeout, "cdli request canceled")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "cdli new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "text/html")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) || ctx.Err() != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "cdli request failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("cdli transport error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeTimeout, "cdli request canceled")
			}
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("cdli http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp.Body, nil
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				if resp.StatusCode == http.StatusTooManyRequests {
					return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "cdli rate limited")
				}
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "cdli transient server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Int("attempt", attempts).Msg("cdli transient error retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeTimeout, "cdli request canceled")
			}
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUpstream, "cdli unexpected status %d body %s", resp.StatusCode, strings.TrimSpace(string(tail)))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase/time.Millisecond) << uint(attempt)
	if limit := int64(10 * time.Second / time.Millisecond); ms > limit {
		ms = limit
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool { return attempt < c.opts.MaxRetries }

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
