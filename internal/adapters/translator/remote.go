package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	perr "akkadian/internal/platform/errors"
)

const (
	defaultRemoteTimeout = 60 * time.Second
	defaultRemoteUA      = "akkadian-translate"
)

// RemoteOptions configures the HTTP model backend
type RemoteOptions struct {
	// URL receives POST {"text": chunk} and answers {"message": translation}
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// Remote is a Backend served by a model server over HTTP
type Remote struct {
	http *http.Client
	opts RemoteOptions
}

// NewRemote returns nil when no URL is configured
func NewRemote(o RemoteOptions) *Remote {
	if o.URL == "" {
		return nil
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultRemoteTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultRemoteUA
	}
	return &Remote{http: &http.Client{Timeout: o.Timeout}, opts: o}
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Translate sends one chunk to the model server
func (r *Remote) Translate(ctx context.Context, chunk string) (string, error) {
	body, err := json.Marshal(remoteRequest{Text: chunk})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "translate encode failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.URL, bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "translate new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", perr.Wrapf(err, perr.ErrorCodeTimeout, "translation backend timed out")
		}
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "translation backend unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "translation backend read failed")
	}

	var out remoteResponse
	_ = json.Unmarshal(raw, &out)

	switch {
	case resp.StatusCode == http.StatusOK:
		if out.Message == "" && len(raw) > 0 && !json.Valid(raw) {
			return "", perr.Newf(perr.ErrorCodeUpstream, "translation backend sent invalid json")
		}
		return out.Message, nil
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", perr.Newf(perr.ErrorCodeUnavailable, "translation service unavailable")
	case resp.StatusCode == http.StatusGatewayTimeout:
		return "", perr.Newf(perr.ErrorCodeTimeout, "translation backend timed out")
	default:
		msg := out.Detail
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", perr.Newf(perr.ErrorCodeUpstream, "translation backend status %d: %s", resp.StatusCode, msg)
	}
}

// NewFromRemote builds a Translator over Remote
// an empty URL yields a Translator that reports unavailable
func NewFromRemote(o RemoteOptions, cfg Config) *Translator {
	if r := NewRemote(o); r != nil {
		return New(r, cfg)
	}
	return New(nil, cfg)
}
