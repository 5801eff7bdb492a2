package accountsdk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// API paths.
const (
	PathCSRF           = "/auth/csrf/"
	PathRegister       = "/auth/register/"
	PathLogin          = "/auth/login/"
	PathLogout         = "/auth/logout/"
	PathMe             = "/auth/me/"
	PathRefresh        = "/auth/token/refresh/"
	PathPasswordChange = "/auth/password/change/"
)

// Client talks to the accounts API and owns every piece of client side
// auth state: the credential carrier, the session store and the refresh
// gateway. Several Clients in one process never share state.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Carrier    CredentialCarrier
	Session    *SessionStore

	// OnSessionExpired runs once per failed refresh, after the session and
	// carrier have been cleared and before queued calls are rejected. It is
	// where an application sends the user back to its login entry point.
	OnSessionExpired func()

	Logger *slog.Logger

	gate refreshGate
}

// NewClient creates a client with a cookie carrier and a 10s transport
// timeout.
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	carrier, err := NewCookieCarrier(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Carrier: carrier,
		Session: NewSessionStore(),
		Logger:  slog.Default(),
	}, nil
}

// refreshable reports whether a 401 on path may trigger a refresh. The
// credential endpoints themselves never do.
func refreshable(path string) bool {
	switch path {
	case PathLogin, PathRefresh, PathLogout:
		return false
	}
	return true
}

// do sends a request through the refresh gateway. A 401 on a refreshable
// call waits for (or performs) a single shared refresh and replays the call
// once, in the order the calls were rejected. When the refresh fails the
// call returns ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	body, err := encodeBody(in)
	if err != nil {
		return nil, err
	}
	if isUnsafe(method) {
		if err := c.ensureCSRF(ctx); err != nil {
			return nil, err
		}
	}

	release := noop
	for retried := false; ; retried = true {
		gen := c.gate.current()

		resp, err := c.send(ctx, method, path, body)
		// Replays go out one by one; the next queued call waits for this
		// one to be answered.
		release()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusUnauthorized || retried || !refreshable(path) {
			return resp, nil
		}
		drain(resp)

		release, err = c.gate.await(ctx, gen,
			func() error {
				// Waiters share the outcome, so the leader's cancellation
				// must not decide it for them.
				_, err := c.Refresh(context.WithoutCancel(ctx))
				return err
			},
			c.expire,
		)
		if err != nil {
			return nil, err
		}
	}
}

// expire clears all client side auth state after a failed refresh.
func (c *Client) expire(cause error) error {
	c.Logger.Info("session expired", "err", cause)

	c.Session.Clear()
	c.Carrier.Clear()
	if c.OnSessionExpired != nil {
		c.OnSessionExpired()
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

// ensureCSRF fetches a CSRF cookie when the carrier has none yet.
func (c *Client) ensureCSRF(ctx context.Context) error {
	holder, ok := c.Carrier.(interface{ CSRFToken() string })
	if !ok || holder.CSRFToken() != "" {
		return nil
	}
	_, err := c.FetchCSRFToken(ctx)
	return err
}
