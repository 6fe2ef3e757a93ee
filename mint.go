package nftexchange

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// CollectionService exposes collection metadata and the token-id allocation
// endpoint. Allocated ids are unique within a collection regardless of
// concurrent callers; that guarantee lives with the collaborator.
type CollectionService interface {
	GetCollection(ctx context.Context, collection common.Address) (*Collection, error)
	GenerateTokenID(ctx context.Context, collection, minter common.Address) (*big.Int, error)
}

// LazyMintService registers signed lazy-mint payloads with the protocol API.
// Registration is an off-chain write, not a transaction.
type LazyMintService interface {
	RegisterLazyMint(ctx context.Context, reg *LazyMintRegistration) (*Item, error)
}

// MintResult describes a minted item. Off-chain results carry no
// transaction; on-chain results expose the handle for confirmation.
// ItemID has the same shape in both paths, so downstream consumers cannot
// distinguish provenance by id.
type MintResult struct {
	Type        MintResponseType
	ItemID      string
	TokenID     *big.Int
	Owner       common.Address
	Contract    common.Address
	Transaction chain.TxHandle
}

// Minter chooses between the lazy (off-chain signed) and on-chain minting
// paths.
type Minter struct {
	collections CollectionService
	lazyMints   LazyMintService
	signer      chain.LazyMintSigner
	sender      chain.Sender
	log         *logrus.Entry
}

// NewMinter wires the mint dispatcher's collaborators.
func NewMinter(collections CollectionService, lazyMints LazyMintService, signer chain.LazyMintSigner, sender chain.Sender, logger *logrus.Logger) *Minter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Minter{
		collections: collections,
		lazyMints:   lazyMints,
		signer:      signer,
		sender:      sender,
		log:         logger.WithField("component", "minter"),
	}
}

// Mint dispatches the request to one of the two terminal paths. The owner of
// the minted item is the first creator.
func (m *Minter) Mint(ctx context.Context, req *MintRequest) (*MintResult, error) {
	if req == nil {
		return nil, &InvalidParamError{Message: "mint request is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	owner := req.Creators[0].Account
	if req.Lazy {
		return m.mintOffChain(ctx, req, owner)
	}
	return m.mintOnChain(ctx, req, owner)
}

func (m *Minter) mintOffChain(ctx context.Context, req *MintRequest, owner common.Address) (*MintResult, error) {
	col := req.Collection
	if !col.SupportsLazyMint {
		return nil, ErrLazyMintUnsupported
	}

	// Token ids are allocated per (collection, creator) so creators never
	// collide within a collection.
	tokenID, err := m.collections.GenerateTokenID(ctx, col.ID, owner)
	if err != nil {
		return nil, err
	}

	payload := m.lazyMintPayload(req, tokenID)
	signature, err := m.signer.SignLazyMint(ctx, payload)
	if err != nil {
		return nil, err
	}

	reg := &LazyMintRegistration{
		Type:       col.Type,
		Contract:   col.ID,
		TokenID:    NewUint256(tokenID),
		URI:        req.URI,
		Creators:   req.Creators,
		Royalties:  req.Royalties,
		Signatures: []hexutil.Bytes{signature},
	}
	if col.Type == CollectionTypeERC1155 {
		reg.Supply = NewUint256(req.Supply)
	}
	if _, err := m.lazyMints.RegisterLazyMint(ctx, reg); err != nil {
		return nil, err
	}

	itemID := FormatItemID(col.ID, tokenID)
	m.log.WithFields(logrus.Fields{
		"item_id":    itemID,
		"collection": col.ID.Hex(),
	}).Info("lazy mint registered")

	return &MintResult{
		Type:     MintResponseOffChain,
		ItemID:   itemID,
		TokenID:  tokenID,
		Owner:    owner,
		Contract: col.ID,
	}, nil
}

func (m *Minter) mintOnChain(ctx context.Context, req *MintRequest, owner common.Address) (*MintResult, error) {
	col := req.Collection

	tokenID := req.TokenID
	if tokenID == nil {
		allocated, err := m.collections.GenerateTokenID(ctx, col.ID, owner)
		if err != nil {
			return nil, err
		}
		tokenID = allocated
	}

	payload := m.lazyMintPayload(req, tokenID)

	var data []byte
	var err error
	if col.Type == CollectionTypeERC1155 {
		data, err = chain.EncodeMint1155Call(payload, nil, owner, req.Supply)
	} else {
		data, err = chain.EncodeMint721Call(payload, nil, owner)
	}
	if err != nil {
		return nil, err
	}

	handle, err := m.sender.Send(ctx, col.ID, data, nil)
	if err != nil {
		return nil, err
	}

	itemID := FormatItemID(col.ID, tokenID)
	m.log.WithFields(logrus.Fields{
		"item_id": itemID,
		"tx_hash": handle.Hash().Hex(),
	}).Info("on-chain mint submitted")

	return &MintResult{
		Type:        MintResponseOnChain,
		ItemID:      itemID,
		TokenID:     tokenID,
		Owner:       owner,
		Contract:    col.ID,
		Transaction: handle,
	}, nil
}

// lazyMintPayload assembles the exact struct that gets signed (lazy path) or
// encoded into mintAndTransfer (on-chain path).
func (m *Minter) lazyMintPayload(req *MintRequest, tokenID *big.Int) *chain.LazyMint {
	payload := &chain.LazyMint{
		Contract:  req.Collection.ID,
		TokenID:   tokenID,
		URI:       req.URI,
		Creators:  toChainParts(req.Creators),
		Royalties: toChainParts(req.Royalties),
	}
	if req.Collection.Type == CollectionTypeERC1155 {
		payload.Supply = req.Supply
	}
	return payload
}
