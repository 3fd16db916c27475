package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewRequest builds a request with an optional JSON body.
func NewRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do executes req and decodes a JSON response into out (if non-nil).
// Any transport failure or non-2xx status becomes a *RequestError.
func Do(hc Doer, service Service, req *http.Request, out any) error {
	fail := func(code int, err error) error {
		return &RequestError{
			Service:    service,
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: code,
			Err:        err,
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return fail(resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fail(0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
