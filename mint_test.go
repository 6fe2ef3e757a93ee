package nftexchange

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

type fakeCollectionService struct {
	nextTokenID *big.Int
	minter      common.Address
}

func (f *fakeCollectionService) GetCollection(_ context.Context, collection common.Address) (*Collection, error) {
	return &Collection{ID: collection, Type: CollectionTypeERC721, SupportsLazyMint: true}, nil
}

func (f *fakeCollectionService) GenerateTokenID(_ context.Context, _, minter common.Address) (*big.Int, error) {
	f.minter = minter
	return new(big.Int).Set(f.nextTokenID), nil
}

type fakeLazyMintService struct {
	registered *LazyMintRegistration
}

func (f *fakeLazyMintService) RegisterLazyMint(_ context.Context, reg *LazyMintRegistration) (*Item, error) {
	f.registered = reg
	return &Item{
		ID:       FormatItemID(reg.Contract, reg.TokenID.BigInt()),
		Contract: reg.Contract,
		TokenID:  reg.TokenID,
	}, nil
}

type recordingSigner struct {
	payload   *chain.LazyMint
	signature []byte
}

func (s *recordingSigner) SignLazyMint(_ context.Context, m *chain.LazyMint) ([]byte, error) {
	s.payload = m
	return s.signature, nil
}

func newTestMinter(nextTokenID int64) (*Minter, *fakeCollectionService, *fakeLazyMintService, *recordingSigner, *fakeSender) {
	collections := &fakeCollectionService{nextTokenID: big.NewInt(nextTokenID)}
	lazyMints := &fakeLazyMintService{}
	signer := &recordingSigner{signature: []byte{0xab, 0xcd}}
	sender := &fakeSender{from: makerAddr}
	return NewMinter(collections, lazyMints, signer, sender, nil), collections, lazyMints, signer, sender
}

func lazyMintRequest() *MintRequest {
	return &MintRequest{
		Lazy:       true,
		Collection: Collection{ID: nftContract, Type: CollectionTypeERC721, SupportsLazyMint: true},
		URI:        "ipfs://QmToken",
		Creators:   []Part{{Account: makerAddr, Value: 10000}},
		Royalties:  []Part{{Account: makerAddr, Value: 500}},
	}
}

func TestLazyMintRegistersSignedPayload(t *testing.T) {
	minter, collections, lazyMints, signer, sender := newTestMinter(12345)

	result, err := minter.Mint(context.Background(), lazyMintRequest())
	require.NoError(t, err)

	assert.Equal(t, MintResponseOffChain, result.Type)
	assert.Equal(t, nftContract.Hex()+":12345", result.ItemID)
	assert.Zero(t, result.TokenID.Cmp(big.NewInt(12345)))
	assert.Equal(t, makerAddr, result.Owner, "owner is the first creator")
	assert.Nil(t, result.Transaction, "lazy mints submit nothing")
	assert.Empty(t, sender.calls)

	assert.Equal(t, makerAddr, collections.minter, "ids are allocated for the creator")

	require.NotNil(t, signer.payload)
	assert.Zero(t, signer.payload.TokenID.Cmp(big.NewInt(12345)), "the signed payload carries the allocated id")
	assert.Equal(t, nftContract, signer.payload.Contract)
	assert.Nil(t, signer.payload.Supply, "ERC721 payloads have no supply")

	reg := lazyMints.registered
	require.NotNil(t, reg)
	assert.Equal(t, CollectionTypeERC721, reg.Type)
	assert.Zero(t, reg.TokenID.BigInt().Cmp(big.NewInt(12345)))
	require.Len(t, reg.Signatures, 1)
	assert.Equal(t, signer.signature, []byte(reg.Signatures[0]))
	assert.Nil(t, reg.Supply)
}

func TestLazyMint1155CarriesSupply(t *testing.T) {
	minter, _, lazyMints, signer, _ := newTestMinter(7)

	req := lazyMintRequest()
	req.Collection.Type = CollectionTypeERC1155
	req.Supply = big.NewInt(50)

	_, err := minter.Mint(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, signer.payload.Supply)
	assert.Zero(t, signer.payload.Supply.Cmp(big.NewInt(50)))
	require.NotNil(t, lazyMints.registered.Supply)
	assert.Zero(t, lazyMints.registered.Supply.BigInt().Cmp(big.NewInt(50)))
}

func TestLazyMintRequiresCollectionSupport(t *testing.T) {
	minter, _, _, _, _ := newTestMinter(1)

	req := lazyMintRequest()
	req.Collection.SupportsLazyMint = false

	_, err := minter.Mint(context.Background(), req)
	require.ErrorIs(t, err, ErrLazyMintUnsupported)
}

func TestMintRejectsInvalidRequests(t *testing.T) {
	minter, _, _, _, _ := newTestMinter(1)

	var invalidErr *InvalidParamError
	_, err := minter.Mint(context.Background(), nil)
	require.ErrorAs(t, err, &invalidErr)

	req := lazyMintRequest()
	req.Creators = []Part{{Account: makerAddr, Value: 9999}}
	_, err = minter.Mint(context.Background(), req)
	require.ErrorAs(t, err, &invalidErr)
}

func TestOnChainMintSubmitsToCollection(t *testing.T) {
	minter, _, lazyMints, _, sender := newTestMinter(1)

	req := lazyMintRequest()
	req.Lazy = false
	req.TokenID = big.NewInt(7)

	result, err := minter.Mint(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, MintResponseOnChain, result.Type)
	assert.Equal(t, nftContract.Hex()+":7", result.ItemID, "item id shape matches the lazy path")
	require.NotNil(t, result.Transaction)
	assert.Nil(t, lazyMints.registered, "on-chain mints skip the registry")

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, nftContract, call.to)
	assert.Equal(t, chain.GetERC721MintABI().Methods["mintAndTransfer"].ID, call.data[:4])
}

func TestOnChainMintAllocatesTokenID(t *testing.T) {
	minter, _, _, _, _ := newTestMinter(99)

	req := lazyMintRequest()
	req.Lazy = false

	result, err := minter.Mint(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, result.TokenID.Cmp(big.NewInt(99)))
	assert.Equal(t, nftContract.Hex()+":99", result.ItemID)
}

func TestOnChainMint1155EncodesSupply(t *testing.T) {
	minter, _, _, _, sender := newTestMinter(1)

	req := lazyMintRequest()
	req.Lazy = false
	req.Collection.Type = CollectionTypeERC1155
	req.TokenID = big.NewInt(5)
	req.Supply = big.NewInt(20)

	_, err := minter.Mint(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, chain.GetERC1155MintABI().Methods["mintAndTransfer"].ID, sender.calls[0].data[:4])
}
