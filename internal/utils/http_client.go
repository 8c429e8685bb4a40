package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent by every client built with NewHTTPClient.
const UserAgent = "vaultctl"

// HTTPClient embeds *resty.Client so callers use resty's request builder
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool.
// Redirects are not followed: the daemon never issues them, and a redirect
// would resend the master password to another origin.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	return &HTTPClient{Client: client}
}
