// Package ipfs fetches arbitrary CIDs from one of several configured
// IPFS HTTP gateways, returning raw bytes (the genesis validators dump)
// or leaving JSON parsing to the caller (the protocol-config document).
package ipfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client fetches content from a list of IPFS gateway endpoints, trying
// each in order until one succeeds.
type Client struct {
	endpoints []string
	http      *http.Client
}

// New constructs a Client over the given gateway base URLs (e.g.
// "https://ipfs.io/ipfs", "https://gateway.pinata.cloud/ipfs").
func New(endpoints []string, timeout time.Duration) *Client {
	return &Client{endpoints: endpoints, http: &http.Client{Timeout: timeout}}
}

// FetchBytes retrieves the content at hash from the first gateway that
// responds successfully.
func (c *Client) FetchBytes(ctx context.Context, hash string) ([]byte, error) {
	var lastErr error
	for _, endpoint := range c.endpoints {
		url := fmt.Sprintf("%s/%s", endpoint, hash)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			lastErr = err
			continue
		}
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := readAndClose(resp)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("gateway %s returned status %d", endpoint, resp.StatusCode)
			continue
		}
		return body, nil
	}
	return nil, errors.Wrap(lastErr, "all IPFS gateways failed")
}

func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
