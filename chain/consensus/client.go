// Package consensus is a minimal REST client for the consensus-layer
// endpoints the relayer needs: the finalized checkpoint's execution
// block number, and the current set of registered validator public
// keys. Deliberately thin — full beacon-API client generation is out of
// scope (spec.md §1 lists "raw JSON-RPC and IPFS transport clients" as
// an external collaborator).
package consensus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client is a small wrapper around net/http pointed at a consensus-layer
// beacon-API node.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client against baseURL with the given request
// timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// finalizedBlockResponse models /eth/v2/beacon/blocks/finalized. The
// sibling /eth/v1/beacon/headers/finalized endpoint only carries a
// signed header (slot, parent_root, state_root, body_root) — no
// execution payload — so the execution block number must come from the
// full block body instead.
type finalizedBlockResponse struct {
	Data struct {
		Message struct {
			Slot uint64 `json:"slot,string"`
			Body struct {
				ExecutionPayload struct {
					BlockNumber uint64 `json:"block_number,string"`
				} `json:"execution_payload"`
			} `json:"body"`
		} `json:"message"`
	} `json:"data"`
}

// FinalizedExecutionBlockNumber returns the execution-layer block number
// carried by the current consensus-finalized block's execution payload.
func (c *Client) FinalizedExecutionBlockNumber(ctx context.Context) (uint64, error) {
	var block finalizedBlockResponse
	if err := c.getJSON(ctx, "/eth/v2/beacon/blocks/finalized", &block); err != nil {
		return 0, errors.Wrap(err, "fetching finalized block")
	}
	return block.Data.Message.Body.ExecutionPayload.BlockNumber, nil
}

type validatorsResponse struct {
	Data []struct {
		Validator struct {
			PublicKey string `json:"pubkey"`
		} `json:"validator"`
	} `json:"data"`
}

// RegisteredPublicKeys returns the current set of validator public keys
// known to the consensus client, used by PublicKeysManager.Unregistered.
func (c *Client) RegisteredPublicKeys(ctx context.Context) (map[string]struct{}, error) {
	var resp validatorsResponse
	if err := c.getJSON(ctx, "/eth/v1/beacon/states/head/validators", &resp); err != nil {
		return nil, errors.Wrap(err, "fetching registered validators")
	}
	out := make(map[string]struct{}, len(resp.Data))
	for _, v := range resp.Data {
		out[v.Validator.PublicKey] = struct{}{}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
