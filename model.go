package nftexchange

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Uint256 is a non-negative 256-bit integer carried as a decimal string in
// API payloads.
type Uint256 struct {
	big.Int
}

// NewUint256 copies i into a Uint256. A nil i yields zero.
func NewUint256(i *big.Int) *Uint256 {
	u := new(Uint256)
	if i != nil {
		u.Int.Set(i)
	}
	return u
}

// NewUint256FromString parses a decimal string into a Uint256.
func NewUint256FromString(s string) (*Uint256, error) {
	u := new(Uint256)
	if _, ok := u.Int.SetString(s, 10); !ok {
		return nil, &InvalidParamError{Message: fmt.Sprintf("invalid uint256 value: %q", s)}
	}
	return u, nil
}

// BigInt returns the underlying big integer. Safe on a nil receiver.
func (u *Uint256) BigInt() *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return &u.Int
}

func (u Uint256) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Int.String())
}

func (u *Uint256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if _, ok := u.Int.SetString(s, 10); !ok {
		return fmt.Errorf("invalid uint256 value: %q", s)
	}
	return nil
}

// AssetClass discriminates the supported asset categories.
type AssetClass string

const (
	AssetClassETH         AssetClass = "ETH"
	AssetClassERC20       AssetClass = "ERC20"
	AssetClassERC721      AssetClass = "ERC721"
	AssetClassERC1155     AssetClass = "ERC1155"
	AssetClassCryptoPunks AssetClass = "CRYPTO_PUNKS"
	AssetClassCollection  AssetClass = "COLLECTION"
)

// AssetType identifies one side of a trade: the asset class plus its
// class-specific identifying data.
type AssetType struct {
	Class    AssetClass     `json:"assetClass"`
	Contract common.Address `json:"contract,omitempty"`
	TokenID  *Uint256       `json:"tokenId,omitempty"`
}

// IsNFT reports whether the asset class represents a non-fungible asset.
func (t AssetType) IsNFT() bool {
	switch t.Class {
	case AssetClassERC721, AssetClassERC1155, AssetClassCryptoPunks, AssetClassCollection:
		return true
	case AssetClassETH, AssetClassERC20:
		return false
	}
	return false
}

// IsCurrency reports whether the asset class represents a payment asset.
func (t AssetType) IsCurrency() bool {
	switch t.Class {
	case AssetClassETH, AssetClassERC20:
		return true
	case AssetClassERC721, AssetClassERC1155, AssetClassCryptoPunks, AssetClassCollection:
		return false
	}
	return false
}

// Validate checks the class-specific invariants: a contract for every class
// but ETH, a token id for token-bearing classes, and token ids within the
// chain's 256-bit width.
func (t AssetType) Validate() error {
	switch t.Class {
	case AssetClassETH:
		return nil
	case AssetClassERC20, AssetClassCollection:
		if t.Contract == (common.Address{}) {
			return &InvalidParamError{Message: fmt.Sprintf("%s asset requires a contract address", t.Class)}
		}
		return nil
	case AssetClassERC721, AssetClassERC1155, AssetClassCryptoPunks:
		if t.Contract == (common.Address{}) {
			return &InvalidParamError{Message: fmt.Sprintf("%s asset requires a contract address", t.Class)}
		}
		if t.TokenID == nil {
			return &InvalidParamError{Message: fmt.Sprintf("%s asset requires a token id", t.Class)}
		}
		id := t.TokenID.BigInt()
		if id.Sign() < 0 || id.Cmp(maxUint256) > 0 {
			return &InvalidParamError{Message: fmt.Sprintf("token id out of uint256 range: %s", id)}
		}
		return nil
	}
	return &UnsupportedAssetClassError{Class: t.Class}
}

// Asset pairs an asset type with a quantity: 1 for NFTs, arbitrary for
// fungible and native assets.
type Asset struct {
	Type  AssetType `json:"assetType"`
	Value *Uint256  `json:"value"`
}

// OrderType selects the on-chain matching contract generation an order
// targets.
type OrderType string

const (
	OrderTypeV1         OrderType = "RARIBLE_V1"
	OrderTypeV2         OrderType = "RARIBLE_V2"
	OrderTypeCryptoPunk OrderType = "CRYPTO_PUNK"
)

// Part is a fee or payout share expressed in basis points (10000 = 100%).
type Part struct {
	Account common.Address `json:"account"`
	Value   int            `json:"value"`
}

// OrderData carries the type-specific auxiliary payload of an order.
// V1 orders embed a buyer-fee schedule; V2 orders carry payouts and
// origin fees.
type OrderData struct {
	Kind        string         `json:"dataType"`
	Fee         int            `json:"fee,omitempty"`
	Beneficiary common.Address `json:"beneficiary,omitempty"`
	OriginFees  []Part         `json:"originFees,omitempty"`
	Payouts     []Part         `json:"payouts,omitempty"`
}

// Order is a maker-signed off-chain commitment to swap make for take.
// It is read-only after signing; fills are recorded on-chain.
type Order struct {
	Maker     common.Address `json:"maker"`
	Make      Asset          `json:"make"`
	Take      Asset          `json:"take"`
	Salt      *Uint256       `json:"salt"`
	Type      OrderType      `json:"type"`
	Data      OrderData      `json:"data"`
	Signature hexutil.Bytes  `json:"signature,omitempty"`
}

// Validate checks both sides of the order. Signature presence is checked at
// submission time, not here: crypto-punk orders are legitimately unsigned.
func (o *Order) Validate() error {
	if o.Make.Value == nil || o.Take.Value == nil {
		return &InvalidParamError{Message: "order sides require values"}
	}
	if err := o.Make.Type.Validate(); err != nil {
		return err
	}
	return o.Take.Type.Validate()
}

// nftSideValue returns the total quantity of the order's NFT side, which is
// the unit every fill amount is denominated in.
func (o *Order) nftSideValue() (*big.Int, error) {
	switch {
	case o.Make.Type.IsNFT():
		return o.Make.Value.BigInt(), nil
	case o.Take.Type.IsNFT():
		return o.Take.Value.BigInt(), nil
	}
	return nil, &NoRouteError{Make: o.Make.Type.Class, Take: o.Take.Type.Class}
}

// invert synthesizes the transient counter-order for a fill: make and take
// swapped, values scaled down to the requested amount, the caller as maker.
// The result is never signed or persisted; it exists only to be encoded into
// the matching-contract call.
func (o *Order) invert(taker common.Address, amount *big.Int) (*Order, error) {
	total, err := o.nftSideValue()
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return nil, &InvalidParamError{Message: "order NFT side has zero value"}
	}
	return &Order{
		Maker: taker,
		Make:  Asset{Type: o.Take.Type, Value: NewUint256(scaleFloor(o.Take.Value.BigInt(), amount, total))},
		Take:  Asset{Type: o.Make.Type, Value: NewUint256(scaleFloor(o.Make.Value.BigInt(), amount, total))},
		Salt:  NewUint256(big.NewInt(0)),
		Type:  o.Type,
		Data:  OrderData{Kind: o.Data.Kind},
	}, nil
}

// scaleFloor computes v * amount / total with floor rounding.
func scaleFloor(v, amount, total *big.Int) *big.Int {
	scaled := new(big.Int).Mul(v, amount)
	return scaled.Div(scaled, total)
}

// CollectionType is the token standard a collection contract implements.
type CollectionType string

const (
	CollectionTypeERC721  CollectionType = "ERC721"
	CollectionTypeERC1155 CollectionType = "ERC1155"
)

// Collection describes an NFT collection contract as reported by the
// protocol API.
type Collection struct {
	ID               common.Address `json:"id"`
	Type             CollectionType `json:"type"`
	SupportsLazyMint bool           `json:"supportsLazyMint"`
}

// MintRequest describes a token to mint. Lazy requests are signed off-chain
// and registered with the protocol API; on-chain requests are submitted as
// real transactions.
type MintRequest struct {
	Lazy       bool
	Collection Collection
	URI        string
	Creators   []Part
	Royalties  []Part

	// TokenID applies to on-chain mints only; a fresh id is allocated when nil.
	TokenID *big.Int

	// Supply applies to ERC1155 collections only.
	Supply *big.Int
}

// Validate enforces the mint invariants: creators sum to exactly 10000 basis
// points, every royalty share stays within [0, 10000], and ERC1155 mints
// carry a positive supply.
func (r *MintRequest) Validate() error {
	if r.Collection.ID == (common.Address{}) {
		return &InvalidParamError{Message: "mint request requires a collection"}
	}
	if r.URI == "" {
		return &InvalidParamError{Message: "mint request requires a token URI"}
	}
	if len(r.Creators) == 0 {
		return &InvalidParamError{Message: "mint request requires at least one creator"}
	}
	sum := 0
	for _, c := range r.Creators {
		if c.Value < 0 {
			return &InvalidParamError{Message: "creator share must be non-negative"}
		}
		sum += c.Value
	}
	if sum != 10000 {
		return &InvalidParamError{Message: fmt.Sprintf("creator shares must sum to 10000 basis points, got %d", sum)}
	}
	for _, roy := range r.Royalties {
		if roy.Value < 0 || roy.Value > 10000 {
			return &InvalidParamError{Message: fmt.Sprintf("royalty share out of range [0, 10000]: %d", roy.Value)}
		}
	}
	if r.Collection.Type == CollectionTypeERC1155 && (r.Supply == nil || r.Supply.Sign() <= 0) {
		return &InvalidParamError{Message: "ERC1155 mint requires a positive supply"}
	}
	return nil
}

// MintResponseType tells callers which path produced a minted item.
type MintResponseType string

const (
	MintResponseOffChain MintResponseType = "OFF_CHAIN"
	MintResponseOnChain  MintResponseType = "ON_CHAIN"
)

// LazyMintRegistration is the signed lazy-mint payload registered with the
// protocol API. No transaction is involved.
type LazyMintRegistration struct {
	Type       CollectionType  `json:"@type"`
	Contract   common.Address  `json:"contract"`
	TokenID    *Uint256        `json:"tokenId"`
	URI        string          `json:"uri"`
	Supply     *Uint256        `json:"supply,omitempty"`
	Creators   []Part          `json:"creators"`
	Royalties  []Part          `json:"royalties"`
	Signatures []hexutil.Bytes `json:"signatures"`
}

// Item is an indexed token as reported by the protocol API.
type Item struct {
	ID         string         `json:"id"`
	Contract   common.Address `json:"contract"`
	TokenID    *Uint256       `json:"tokenId"`
	Creators   []Part         `json:"creators,omitempty"`
	LazySupply *Uint256       `json:"lazySupply,omitempty"`
}

// TransactionRequest is a fully prepared contract call, ready for signing
// and broadcast.
type TransactionRequest struct {
	To    common.Address
	Data  []byte
	Value *big.Int
}
