/*
Package accountsdk is the client SDK for the university accounts service.

# Overview

Authentication is cookie based. Login and register answer with two HttpOnly
cookies, a short lived access token and a longer lived refresh token, which
the Client keeps in its CredentialCarrier and attaches to every request.
Tokens never appear in response bodies.

	client, err := accountsdk.NewClient("https://accounts.example.edu")
	if err != nil {
		return err
	}
	client.OnSessionExpired = func() { showLogin() }

	user, err := client.Login(ctx, "ada@uni.edu", "s3cret!pass")

# Refresh Gateway

Every call made through the Client passes the refresh gateway. When a
protected call is rejected with 401 the gateway renews the access token
with the refresh cookie and replays the call once:

  - only one refresh request is ever in flight; calls rejected meanwhile
    queue in FIFO order and are replayed when it succeeds
  - a call whose credentials were already renewed after it was sent is
    replayed without another refresh
  - login, refresh and logout are never refreshed or replayed

When the refresh fails, the session store and carrier are cleared,
OnSessionExpired runs once and every queued call fails with
ErrSessionExpired.

# Session Store

SessionStore holds the signed-in user. Subscribe to it to gate views:

	unsubscribe := client.Session.Subscribe(func(u *accountsdk.User) {
		if u == nil {
			showLogin()
		}
	})
	defer unsubscribe()

# CSRF

Unsafe requests carry the X-CSRF-Token header. The CookieCarrier copies it
from the csrftoken cookie, which the Client fetches on first use.

# Error Handling

Failed calls return *APIError. Validation failures carry field scoped
details so they can be mapped back to form inputs:

	_, err := client.Register(ctx, req)
	var apiErr *accountsdk.APIError
	if errors.As(err, &apiErr) {
		emailMsg := apiErr.FieldError("email")
	}

Predefined errors compare by code:

	if errors.Is(err, accountsdk.ErrInactiveAccount) { ... }

# Thread Safety

A Client is safe for concurrent use.
*/
package accountsdk
