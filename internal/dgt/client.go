// Package dgt fetches DATEX II controlled-zone publications from the
// Direccion General de Trafico open-data endpoints.
package dgt

import (
	"fmt"
	"io"
	"net/http"
)

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	HTTP      HTTPDoer
	UserAgent string
}

var DefaultClient = &Client{
	HTTP: defaultHTTP(),
}

func (c *Client) http() HTTPDoer {
	if c.HTTP == nil {
		return DefaultClient.HTTP
	}

	return c.HTTP
}

func (c *Client) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating GET request: %w", err)
	}

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}

	return res, nil
}

// Fetch performs a GET against url and returns the raw response body. Any
// non-2xx status is a *StatusCodeError. The response is read fully into
// memory; the publications are small (a few hundred KB at most).
func (c *Client) Fetch(url string) ([]byte, error) {
	res, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed getting http response: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusCodeError{StatusCode: res.StatusCode, URL: url}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading http response body: %w", err)
	}

	return body, nil
}
