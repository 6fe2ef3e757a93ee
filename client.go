package nftexchange

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// Client is the main SDK entry point, wiring the order filler and the mint
// dispatcher over one chain and one signing key. Configuration is loaded at
// construction and never mutated; build a new client to reconfigure.
type Client struct {
	api         *APIClient
	filler      *OrderFiller
	minter      *Minter
	transferrer *Transferrer
	sender      *chain.NodeSender
	chainID     ChainID
	log         *logrus.Logger
}

// NewClient creates a new SDK client.
func NewClient(cfg ClientConfig) (*Client, error) {
	supported := false
	for _, id := range SupportedChainIDs {
		if cfg.ChainID == id {
			supported = true
			break
		}
	}
	if !supported {
		return nil, &InvalidParamError{
			Message: fmt.Sprintf("chain_id must be one of %v", SupportedChainIDs),
		}
	}

	addrs := DefaultContractAddresses[cfg.ChainID]
	if cfg.Addresses != nil {
		addrs = *cfg.Addresses
	}
	fees := DefaultFees[cfg.ChainID]
	if cfg.Fees != nil {
		fees = *cfg.Fees
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	sender, err := chain.NewNodeSender(context.Background(), cfg.RPCURL, key, cfg.GasLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction sender: %w", err)
	}

	api := NewAPIClient(cfg.APIHost, cfg.APITimeout)
	signer := chain.NewPrivateKeySigner(key, big.NewInt(int64(cfg.ChainID)))

	return &Client{
		api:         api,
		filler:      NewOrderFiller(addrs, NewFeeCalculator(fees, api), sender, logger),
		minter:      NewMinter(api, api, signer, sender, logger),
		transferrer: NewTransferrer(sender, logger),
		sender:      sender,
		chainID:     cfg.ChainID,
		log:         logger,
	}, nil
}

// GetTransactionData builds the fill call without submitting it.
func (c *Client) GetTransactionData(ctx context.Context, req FillRequest) (*TransactionRequest, error) {
	return c.filler.GetTransactionData(ctx, req)
}

// Buy fills a sale order as the taker.
func (c *Client) Buy(ctx context.Context, req FillRequest) (chain.TxHandle, error) {
	return c.filler.Buy(ctx, req)
}

// AcceptBid fills a bid order as the taker.
func (c *Client) AcceptBid(ctx context.Context, req FillRequest) (chain.TxHandle, error) {
	return c.filler.AcceptBid(ctx, req)
}

// Mint mints a token, lazily or on chain, per the request.
func (c *Client) Mint(ctx context.Context, req *MintRequest) (*MintResult, error) {
	return c.minter.Mint(ctx, req)
}

// Transfer moves an owned token directly to a recipient. amount applies to
// ERC1155 tokens only; nil moves a single unit.
func (c *Client) Transfer(ctx context.Context, asset AssetType, to common.Address, amount *big.Int) (chain.TxHandle, error) {
	return c.transferrer.Transfer(ctx, asset, to, amount)
}

// CheckAssetType resolves an asset type whose class is not set by consulting
// the collection registry; a fully specified type is validated and returned
// as is.
func (c *Client) CheckAssetType(ctx context.Context, t AssetType) (AssetType, error) {
	if t.Class != "" {
		return t, t.Validate()
	}
	col, err := c.api.GetCollection(ctx, t.Contract)
	if err != nil {
		return AssetType{}, err
	}
	switch col.Type {
	case CollectionTypeERC721:
		t.Class = AssetClassERC721
	case CollectionTypeERC1155:
		t.Class = AssetClassERC1155
	default:
		return AssetType{}, &UnsupportedAssetClassError{Class: AssetClass(col.Type)}
	}
	return t, t.Validate()
}

// WaitMinted polls the protocol API until a freshly minted item is indexed.
func (c *Client) WaitMinted(ctx context.Context, itemID string) (*Item, error) {
	return Retry(10, 3*time.Second, func() (*Item, error) {
		return c.api.GetItemByID(ctx, itemID)
	})
}

// Close closes the client and releases the RPC connection.
func (c *Client) Close() {
	if c.sender != nil {
		c.sender.Close()
	}
}
