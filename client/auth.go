package client

import "context"

// LoginResult is the POST /token/ response.
type LoginResult struct {
	Token       string `json:"token"`
	UserID      int    `json:"user_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Directorate string `json:"directorate,omitempty"`
}

// Login exchanges credentials for a session token and installs it on the
// client. The backend authenticates on TSC number.
func (c *Client) Login(ctx context.Context, tscNo, password string) (*LoginResult, error) {
	payload := map[string]string{"username": tscNo, "password": password}
	var result LoginResult
	if err := c.send(ctx, "POST", "/token/", payload, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// Logout invalidates the server-side token and clears it locally. The local
// token is cleared even when the call fails; a dead session must not keep a
// usable credential around.
func (c *Client) Logout(ctx context.Context) error {
	err := c.send(ctx, "POST", "/logout/", struct{}{}, nil)
	c.SetToken("")
	return err
}
