package nftexchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// APIClient handles HTTP requests to the protocol API: order-book reads,
// collection metadata, token-id allocation and lazy-mint registration. It
// satisfies OrderBookService, CollectionService and LazyMintService.
type APIClient struct {
	host   string
	client *http.Client
}

// NewAPIClient creates a new protocol API client.
func NewAPIClient(host string, timeout time.Duration) *APIClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		host: host,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// doRequest performs an HTTP request.
func (c *APIClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := fmt.Sprintf("%s%s", c.host, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// decodeJSONResponse reads the response body, checks HTTP status, and
// decodes JSON.
func (c *APIClient) decodeJSONResponse(resp *http.Response, result interface{}) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyStr := string(bodyBytes)
		if bodyStr == "" {
			bodyStr = resp.Status
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		bodyStr := string(bodyBytes)
		if len(bodyStr) > 200 {
			bodyStr = bodyStr[:200] + "..."
		}
		return fmt.Errorf("failed to decode JSON response: %w (body: %s)", err, bodyStr)
	}

	return nil
}

// GetCollection fetches collection metadata.
func (c *APIClient) GetCollection(ctx context.Context, collection common.Address) (*Collection, error) {
	endpoint := fmt.Sprintf("/v0.1/nft/collections/%s", collection.Hex())
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result Collection
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type tokenIDResponse struct {
	TokenID *Uint256 `json:"tokenId"`
}

// GenerateTokenID allocates a fresh token id scoped to (collection, minter).
func (c *APIClient) GenerateTokenID(ctx context.Context, collection, minter common.Address) (*big.Int, error) {
	endpoint := fmt.Sprintf("/v0.1/nft/collections/%s/generate_token_id?minter=%s", collection.Hex(), minter.Hex())
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result tokenIDResponse
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.TokenID == nil {
		return nil, &OpenAPIError{Message: "token id allocation returned no id"}
	}
	return result.TokenID.BigInt(), nil
}

type remainingFillResponse struct {
	Remaining *Uint256 `json:"remaining"`
}

// GetRemainingFill reads the order-book ledger's remaining fillable amount
// for an order, keyed by its hash.
func (c *APIClient) GetRemainingFill(ctx context.Context, order *Order) (*big.Int, error) {
	chainOrder, err := toChainOrder(order)
	if err != nil {
		return nil, err
	}
	hash, err := chain.HashKey(chainOrder)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/v0.1/order/orders/%s/remaining", hash.Hex())
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result remainingFillResponse
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Remaining == nil {
		return nil, &OpenAPIError{Message: "order book returned no remaining amount"}
	}
	return result.Remaining.BigInt(), nil
}

// RegisterLazyMint registers a signed lazy-mint payload. This is an
// off-chain write; no transaction is involved.
func (c *APIClient) RegisterLazyMint(ctx context.Context, reg *LazyMintRegistration) (*Item, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v0.1/nft/mints", reg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result Item
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetItemByID fetches an indexed item. Freshly minted items may not be
// indexed yet; callers poll with Retry.
func (c *APIClient) GetItemByID(ctx context.Context, itemID string) (*Item, error) {
	endpoint := fmt.Sprintf("/v0.1/nft/items/%s", itemID)
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result Item
	if err := c.decodeJSONResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
