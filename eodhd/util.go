package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// jwget GETs addr and decodes its JSON body into data. The address is left out
// of errors since it carries the API token.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("eodhd request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("eodhd %s: %w", req.URL.Path, unwrapURLError(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("eodhd %s: %s: %s", req.URL.Path, resp.Status, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("eodhd %s: malformed response: %w", req.URL.Path, err)
	}
	return nil
}

// unwrapURLError drops the address from transport errors.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
