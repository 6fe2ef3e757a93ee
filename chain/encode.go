package chain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Asset is the ABI-level representation of one order side: the 4-byte class
// identifier, the class-specific encoded data and the quantity.
type Asset struct {
	Class [4]byte
	Data  []byte
	Value *big.Int
}

// Order is the ABI-level order tuple submitted to the matching contracts.
type Order struct {
	Maker    common.Address
	Make     Asset
	Taker    common.Address
	Take     Asset
	Salt     *big.Int
	Start    *big.Int
	End      *big.Int
	DataType [4]byte
	Data     []byte
}

// Part is an (account, basis-points) share as encoded on chain (uint96).
type Part struct {
	Account common.Address
	Value   *big.Int
}

func mustType(t string, components []abi.ArgumentMarshaling) abi.Type {
	typ, err := abi.NewType(t, "", components)
	if err != nil {
		panic("failed to build ABI type " + t + ": " + err.Error())
	}
	return typ
}

var (
	addressT = mustType("address", nil)
	uint256T = mustType("uint256", nil)
	bytes32T = mustType("bytes32", nil)
	bytes4T  = mustType("bytes4", nil)
	partsT   = mustType("tuple[]", []abi.ArgumentMarshaling{
		{Name: "account", Type: "address"},
		{Name: "value", Type: "uint96"},
	})
)

// EncodeContractAssetData encodes the asset data of contract-only classes
// (ERC20, COLLECTION).
func EncodeContractAssetData(contract common.Address) []byte {
	packed, err := abi.Arguments{{Type: addressT}}.Pack(contract)
	if err != nil {
		panic("failed to encode contract asset data: " + err.Error())
	}
	return packed
}

// EncodeTokenAssetData encodes the asset data of token-bearing classes
// (ERC721, ERC1155, CRYPTO_PUNKS).
func EncodeTokenAssetData(contract common.Address, tokenID *big.Int) []byte {
	packed, err := abi.Arguments{{Type: addressT}, {Type: uint256T}}.Pack(contract, tokenID)
	if err != nil {
		panic("failed to encode token asset data: " + err.Error())
	}
	return packed
}

// DecodeTokenAssetData is the inverse of EncodeTokenAssetData.
func DecodeTokenAssetData(data []byte) (common.Address, *big.Int, error) {
	vals, err := abi.Arguments{{Type: addressT}, {Type: uint256T}}.Unpack(data)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to decode token asset data: %w", err)
	}
	contract, ok := vals[0].(common.Address)
	if !ok {
		return common.Address{}, nil, errors.New("token asset data: unexpected contract type")
	}
	tokenID, ok := vals[1].(*big.Int)
	if !ok {
		return common.Address{}, nil, errors.New("token asset data: unexpected token id type")
	}
	return contract, tokenID, nil
}

// EncodeOrderDataV1 encodes the legacy order payload: beneficiary plus the
// embedded buyer fee in basis points.
func EncodeOrderDataV1(beneficiary common.Address, feeBps *big.Int) []byte {
	packed, err := abi.Arguments{{Type: addressT}, {Type: uint256T}}.Pack(beneficiary, feeBps)
	if err != nil {
		panic("failed to encode V1 order data: " + err.Error())
	}
	return packed
}

// EncodeOrderDataV2 encodes payouts and origin fees for V2 orders.
func EncodeOrderDataV2(payouts, originFees []Part) ([]byte, error) {
	packed, err := abi.Arguments{{Type: partsT}, {Type: partsT}}.Pack(toABIParts(payouts), toABIParts(originFees))
	if err != nil {
		return nil, fmt.Errorf("failed to encode V2 order data: %w", err)
	}
	return packed, nil
}

type abiPart struct {
	Account common.Address
	Value   *big.Int
}

func toABIParts(parts []Part) []abiPart {
	out := make([]abiPart, 0, len(parts))
	for _, p := range parts {
		v := p.Value
		if v == nil {
			v = big.NewInt(0)
		}
		out = append(out, abiPart{Account: p.Account, Value: v})
	}
	return out
}

type abiAssetType struct {
	AssetClass [4]byte
	Data       []byte
}

type abiAsset struct {
	AssetType abiAssetType
	Value     *big.Int
}

type abiOrder struct {
	Maker     common.Address
	MakeAsset abiAsset
	Taker     common.Address
	TakeAsset abiAsset
	Salt      *big.Int
	Start     *big.Int
	End       *big.Int
	DataType  [4]byte
	Data      []byte
}

type abiOrderV1 struct {
	Maker     common.Address
	MakeAsset abiAsset
	Taker     common.Address
	TakeAsset abiAsset
	Salt      *big.Int
}

func orZero(i *big.Int) *big.Int {
	if i == nil {
		return big.NewInt(0)
	}
	return i
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func toABIAsset(a Asset) abiAsset {
	return abiAsset{
		AssetType: abiAssetType{AssetClass: a.Class, Data: orEmpty(a.Data)},
		Value:     orZero(a.Value),
	}
}

func toABIOrder(o Order) abiOrder {
	return abiOrder{
		Maker:     o.Maker,
		MakeAsset: toABIAsset(o.Make),
		Taker:     o.Taker,
		TakeAsset: toABIAsset(o.Take),
		Salt:      orZero(o.Salt),
		Start:     orZero(o.Start),
		End:       orZero(o.End),
		DataType:  o.DataType,
		Data:      orEmpty(o.Data),
	}
}

// FillParams carries everything a call encoder needs to build the
// matching-contract call for one fill.
type FillParams struct {
	// Order is the maker's signed order; Counter is the transient unsigned
	// counter-order mirroring it from the caller's side.
	Order     Order
	Signature []byte
	Counter   Order

	// Amount is the fill quantity in units of the order's NFT side.
	Amount *big.Int

	// FeeBps is the fee schedule reported by the fee calculator. V1 calls
	// carry it explicitly; V2 contracts read it from protocol state.
	FeeBps int

	// Beneficiary receives the purchased asset; the zero address means the
	// caller itself.
	Beneficiary common.Address
}

// CallEncoder encodes a fill into a target contract address and call data.
// One encoder is registered per order type.
type CallEncoder interface {
	EncodeFill(p FillParams) (common.Address, []byte, error)
}

// V2Encoder targets the ExchangeV2 matchOrders entry point.
type V2Encoder struct {
	Exchange common.Address
}

func (e V2Encoder) EncodeFill(p FillParams) (common.Address, []byte, error) {
	exchangeABI := GetExchangeV2ABI()
	data, err := exchangeABI.Pack("matchOrders",
		toABIOrder(p.Order),
		orEmpty(p.Signature),
		toABIOrder(p.Counter),
		[]byte{},
	)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to pack matchOrders: %w", err)
	}
	return e.Exchange, data, nil
}

// V1Encoder targets the legacy ExchangeV1 buy entry point.
type V1Encoder struct {
	Exchange common.Address
}

func (e V1Encoder) EncodeFill(p FillParams) (common.Address, []byte, error) {
	order := abiOrderV1{
		Maker:     p.Order.Maker,
		MakeAsset: toABIAsset(p.Order.Make),
		Taker:     p.Order.Taker,
		TakeAsset: toABIAsset(p.Order.Take),
		Salt:      orZero(p.Order.Salt),
	}
	beneficiary := p.Beneficiary
	if beneficiary == (common.Address{}) {
		beneficiary = p.Counter.Maker
	}
	exchangeABI := GetExchangeV1ABI()
	data, err := exchangeABI.Pack("buy",
		order,
		orEmpty(p.Signature),
		orZero(p.Amount),
		big.NewInt(int64(p.FeeBps)),
		beneficiary,
	)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to pack exchange buy: %w", err)
	}
	return e.Exchange, data, nil
}

// PunkEncoder targets the CryptoPunksMarket contract directly. The legacy
// market implements the full trade atomically itself, so no counter-order
// is encoded.
type PunkEncoder struct {
	Market common.Address
}

func (e PunkEncoder) EncodeFill(p FillParams) (common.Address, []byte, error) {
	marketABI := GetPunksMarketABI()
	switch {
	case p.Order.Make.Class == ClassCryptoPunks:
		// Sale order: the caller buys the punk.
		contract, punkIndex, err := DecodeTokenAssetData(p.Order.Make.Data)
		if err != nil {
			return common.Address{}, nil, err
		}
		data, err := marketABI.Pack("buyPunk", punkIndex)
		if err != nil {
			return common.Address{}, nil, fmt.Errorf("failed to pack buyPunk: %w", err)
		}
		return e.marketAddress(contract), data, nil
	case p.Order.Take.Class == ClassCryptoPunks:
		// Bid order: the caller sells the punk into the maker's bid.
		contract, punkIndex, err := DecodeTokenAssetData(p.Order.Take.Data)
		if err != nil {
			return common.Address{}, nil, err
		}
		data, err := marketABI.Pack("acceptBidForPunk", punkIndex, orZero(p.Order.Make.Value))
		if err != nil {
			return common.Address{}, nil, fmt.Errorf("failed to pack acceptBidForPunk: %w", err)
		}
		return e.marketAddress(contract), data, nil
	}
	return common.Address{}, nil, errors.New("punk encoder: order has no CRYPTO_PUNKS side")
}

// marketAddress prefers the market named by the asset itself; punk assets
// carry their market contract as the asset contract.
func (e PunkEncoder) marketAddress(fromAsset common.Address) common.Address {
	if fromAsset != (common.Address{}) {
		return fromAsset
	}
	return e.Market
}

// EncodeMint721Call encodes an on-chain mintAndTransfer for an ERC721
// collection.
func EncodeMint721Call(m *LazyMint, signatures [][]byte, to common.Address) ([]byte, error) {
	mintData := struct {
		TokenId    *big.Int
		TokenURI   string
		Creators   []abiPart
		Royalties  []abiPart
		Signatures [][]byte
	}{
		TokenId:    orZero(m.TokenID),
		TokenURI:   m.URI,
		Creators:   toABIParts(m.Creators),
		Royalties:  toABIParts(m.Royalties),
		Signatures: emptySignatures(signatures),
	}
	data, err := GetERC721MintABI().Pack("mintAndTransfer", mintData, to)
	if err != nil {
		return nil, fmt.Errorf("failed to pack ERC721 mintAndTransfer: %w", err)
	}
	return data, nil
}

// EncodeMint1155Call encodes an on-chain mintAndTransfer for an ERC1155
// collection. amount is the quantity transferred to the receiver.
func EncodeMint1155Call(m *LazyMint, signatures [][]byte, to common.Address, amount *big.Int) ([]byte, error) {
	mintData := struct {
		TokenId    *big.Int
		TokenURI   string
		Supply     *big.Int
		Creators   []abiPart
		Royalties  []abiPart
		Signatures [][]byte
	}{
		TokenId:    orZero(m.TokenID),
		TokenURI:   m.URI,
		Supply:     orZero(m.Supply),
		Creators:   toABIParts(m.Creators),
		Royalties:  toABIParts(m.Royalties),
		Signatures: emptySignatures(signatures),
	}
	data, err := GetERC1155MintABI().Pack("mintAndTransfer", mintData, to, orZero(amount))
	if err != nil {
		return nil, fmt.Errorf("failed to pack ERC1155 mintAndTransfer: %w", err)
	}
	return data, nil
}

// EncodeERC721Transfer encodes safeTransferFrom on an ERC721 contract.
func EncodeERC721Transfer(from, to common.Address, tokenID *big.Int) ([]byte, error) {
	data, err := GetERC721TransferABI().Pack("safeTransferFrom", from, to, orZero(tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to pack ERC721 safeTransferFrom: %w", err)
	}
	return data, nil
}

// EncodeERC1155Transfer encodes safeTransferFrom on an ERC1155 contract.
func EncodeERC1155Transfer(from, to common.Address, tokenID, amount *big.Int) ([]byte, error) {
	data, err := GetERC1155TransferABI().Pack("safeTransferFrom", from, to, orZero(tokenID), orZero(amount), []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to pack ERC1155 safeTransferFrom: %w", err)
	}
	return data, nil
}

func emptySignatures(sigs [][]byte) [][]byte {
	if sigs == nil {
		return [][]byte{}
	}
	return sigs
}
