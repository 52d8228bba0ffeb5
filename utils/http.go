// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient is the client used for calls to sibling services.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
