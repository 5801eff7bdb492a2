package accountsdk

import (
	"context"
	"net/http"
)

// FetchCSRFToken asks the server for a CSRF cookie. The carrier keeps it
// and echoes it on unsafe requests.
func (c *Client) FetchCSRFToken(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, PathCSRF, nil)
	if err != nil {
		return "", err
	}

	var out CSRFResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.CSRFToken, nil
}

// Login signs in with email and password and stores the user in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.do(ctx, http.MethodPost, PathLogin, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	c.Session.Set(out.User)
	return &out.User, nil
}

// Register creates an account. The server signs the new user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.do(ctx, http.MethodPost, PathRegister, req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	c.Session.Set(out.User)
	return &out.User, nil
}

// Logout revokes the server side tokens. Local state is cleared even when
// the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer func() {
		c.Session.Clear()
		c.Carrier.Clear()
	}()

	resp, err := c.do(ctx, http.MethodPost, PathLogout, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Me loads the signed-in user and refreshes the session store.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, PathMe, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	c.Session.Set(u)
	return &u, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) (*User, error) {
	resp, err := c.do(ctx, http.MethodPatch, PathMe, req)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	c.Session.Set(u)
	return &u, nil
}

// ChangePassword replaces the password. The server revokes every session of
// the user, so the client is signed out on success.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := c.do(ctx, http.MethodPost, PathPasswordChange, PasswordChangeRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	if err := decodeJSON(resp, nil, http.StatusOK); err != nil {
		return err
	}

	c.Session.Clear()
	c.Carrier.Clear()
	return nil
}

// Refresh renews the access token directly, outside the gateway.
func (c *Client) Refresh(ctx context.Context) (*RefreshResponse, error) {
	if err := c.ensureCSRF(ctx); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, PathRefresh, nil)
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Do calls any other protected endpoint through the refresh gateway. in is
// sent as JSON when non-nil; a 2xx body is decoded into out when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeJSON(resp, nil, http.StatusOK)
	}
	return decodeJSON(resp, out, resp.StatusCode)
}
