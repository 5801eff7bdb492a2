package accountsdk

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/aussiebroadwan/university/pkg/httpx"
)

// CredentialCarrier moves credentials between the client and the wire. The
// gateway is written against this capability only, so a carrier that keeps
// tokens in headers could replace cookies without touching refresh logic.
type CredentialCarrier interface {
	// Attach adds credentials to an outgoing request.
	Attach(req *http.Request)

	// Capture stores credentials delivered by a response.
	Capture(resp *http.Response)

	// Clear forgets the authentication credentials.
	Clear()
}

// CookieCarrier carries credentials in a cookie jar, the way a browser does.
// It also echoes the CSRF cookie in the X-CSRF-Token header on unsafe
// requests.
type CookieCarrier struct {
	mu   sync.Mutex
	Jar  http.CookieJar
	base *url.URL
}

// NewCookieCarrier returns a carrier with an empty jar scoped to baseURL.
func NewCookieCarrier(baseURL string) (*CookieCarrier, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &CookieCarrier{Jar: jar, base: u}, nil
}

func (c *CookieCarrier) Attach(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ck := range c.Jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}
	if !httpx.IsSafeMethod(req.Method) {
		if token := c.cookie(req.URL, httpx.CSRFCookie); token != "" {
			req.Header.Set(httpx.CSRFHeader, token)
		}
	}
}

func (c *CookieCarrier) Capture(resp *http.Response) {
	if resp == nil || resp.Request == nil {
		return
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.mu.Lock()
		c.Jar.SetCookies(resp.Request.URL, cookies)
		c.mu.Unlock()
	}
}

// Clear expires the token cookies. The CSRF cookie survives so the next
// login does not need a fresh one.
func (c *CookieCarrier) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Jar.SetCookies(c.base, []*http.Cookie{
		{Name: httpx.AccessTokenCookie, Path: "/", MaxAge: -1},
		{Name: httpx.RefreshTokenCookie, Path: "/", MaxAge: -1},
	})
}

// CSRFToken returns the CSRF cookie for the base URL, or "".
func (c *CookieCarrier) CSRFToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookie(c.base, httpx.CSRFCookie)
}

// Cookie returns the named cookie value for the base URL, or "".
func (c *CookieCarrier) Cookie(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookie(c.base, name)
}

func (c *CookieCarrier) cookie(u *url.URL, name string) string {
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}
