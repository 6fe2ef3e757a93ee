package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EIP712 domain constants for lazy-mint signing. The verifying contract is
// the collection being minted into.
const (
	Mint721DomainName  = "Mint721"
	Mint1155DomainName = "Mint1155"
	MintDomainVersion  = "1"
)

// Pre-computed type hashes using keccak256.
var (
	// EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)
	eip712DomainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)",
	))

	// Part(address account,uint96 value)
	partTypeHash = crypto.Keccak256Hash([]byte(
		"Part(address account,uint96 value)",
	))

	mint721TypeHash = crypto.Keccak256Hash([]byte(
		"Mint721(uint256 tokenId,string tokenURI,Part[] creators,Part[] royalties)Part(address account,uint96 value)",
	))

	mint1155TypeHash = crypto.Keccak256Hash([]byte(
		"Mint1155(uint256 tokenId,uint256 supply,string tokenURI,Part[] creators,Part[] royalties)Part(address account,uint96 value)",
	))
)

// LazyMint is the unsigned lazy-mint payload: the exact struct the creator
// signs and the protocol later redeems on first transfer. Supply is nil for
// ERC721 collections.
type LazyMint struct {
	Contract  common.Address
	TokenID   *big.Int
	URI       string
	Supply    *big.Int
	Creators  []Part
	Royalties []Part
}

func domainSeparator(name string, chainID *big.Int, verifyingContract common.Address) (common.Hash, error) {
	encoded, err := abi.Arguments{
		{Type: bytes32T},
		{Type: bytes32T},
		{Type: bytes32T},
		{Type: uint256T},
		{Type: addressT},
	}.Pack(
		eip712DomainTypeHash,
		crypto.Keccak256Hash([]byte(name)),
		crypto.Keccak256Hash([]byte(MintDomainVersion)),
		chainID,
		verifyingContract,
	)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode domain separator: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func partHash(p Part) (common.Hash, error) {
	encoded, err := abi.Arguments{
		{Type: bytes32T},
		{Type: addressT},
		{Type: uint256T},
	}.Pack(partTypeHash, p.Account, orZero(p.Value))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode part: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func partsHash(parts []Part) (common.Hash, error) {
	var concat []byte
	for _, p := range parts {
		h, err := partHash(p)
		if err != nil {
			return common.Hash{}, err
		}
		concat = append(concat, h.Bytes()...)
	}
	return crypto.Keccak256Hash(concat), nil
}

// structHash computes the EIP712 struct hash of the lazy-mint payload.
func (m *LazyMint) structHash() (common.Hash, error) {
	creators, err := partsHash(m.Creators)
	if err != nil {
		return common.Hash{}, err
	}
	royalties, err := partsHash(m.Royalties)
	if err != nil {
		return common.Hash{}, err
	}
	uriHash := crypto.Keccak256Hash([]byte(m.URI))

	if m.Supply != nil {
		encoded, err := abi.Arguments{
			{Type: bytes32T},
			{Type: uint256T},
			{Type: uint256T},
			{Type: bytes32T},
			{Type: bytes32T},
			{Type: bytes32T},
		}.Pack(mint1155TypeHash, orZero(m.TokenID), m.Supply, uriHash, creators, royalties)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to encode Mint1155 struct: %w", err)
		}
		return crypto.Keccak256Hash(encoded), nil
	}

	encoded, err := abi.Arguments{
		{Type: bytes32T},
		{Type: uint256T},
		{Type: bytes32T},
		{Type: bytes32T},
		{Type: bytes32T},
	}.Pack(mint721TypeHash, orZero(m.TokenID), uriHash, creators, royalties)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode Mint721 struct: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

// TypedDataHash computes the final EIP712 digest to be signed:
// keccak256("\x19\x01" ++ domainSeparator ++ structHash).
func (m *LazyMint) TypedDataHash(chainID *big.Int) (common.Hash, error) {
	name := Mint721DomainName
	if m.Supply != nil {
		name = Mint1155DomainName
	}
	domain, err := domainSeparator(name, chainID, m.Contract)
	if err != nil {
		return common.Hash{}, err
	}
	structH, err := m.structHash()
	if err != nil {
		return common.Hash{}, err
	}

	data := make([]byte, 0, 2+32+32)
	data = append(data, 0x19, 0x01)
	data = append(data, domain.Bytes()...)
	data = append(data, structH.Bytes()...)
	return crypto.Keccak256Hash(data), nil
}

// LazyMintSigner produces a signature over a lazy-mint payload. Signing may
// require user interaction, hence the context.
type LazyMintSigner interface {
	SignLazyMint(ctx context.Context, m *LazyMint) ([]byte, error)
}

// PrivateKeySigner signs lazy-mint payloads with a local private key.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// NewPrivateKeySigner creates a signer bound to one chain.
func NewPrivateKeySigner(key *ecdsa.PrivateKey, chainID *big.Int) *PrivateKeySigner {
	return &PrivateKeySigner{key: key, chainID: chainID}
}

// From returns the signer's address.
func (s *PrivateKeySigner) From() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignLazyMint signs the EIP712 digest of the payload.
func (s *PrivateKeySigner) SignLazyMint(_ context.Context, m *LazyMint) ([]byte, error) {
	digest, err := m.TypedDataHash(s.chainID)
	if err != nil {
		return nil, err
	}
	signature, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign lazy mint: %w", err)
	}
	// Recovery id in Ethereum convention.
	signature[64] += 27
	return signature, nil
}

// HashKey identifies an order for order-book lookups: the maker, both asset
// types and the salt. Fill state is tracked per key, so two fills of the
// same order resolve to the same ledger entry.
func HashKey(o Order) (common.Hash, error) {
	makeHash, err := assetTypeHash(o.Make)
	if err != nil {
		return common.Hash{}, err
	}
	takeHash, err := assetTypeHash(o.Take)
	if err != nil {
		return common.Hash{}, err
	}
	encoded, err := abi.Arguments{
		{Type: addressT},
		{Type: bytes32T},
		{Type: bytes32T},
		{Type: uint256T},
	}.Pack(o.Maker, makeHash, takeHash, orZero(o.Salt))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode order hash key: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func assetTypeHash(a Asset) (common.Hash, error) {
	encoded, err := abi.Arguments{
		{Type: bytes4T},
		{Type: bytes32T},
	}.Pack(a.Class, crypto.Keccak256Hash(orEmpty(a.Data)))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode asset type: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}
