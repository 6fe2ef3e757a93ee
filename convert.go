package nftexchange

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// toChainAssetType maps a model asset type onto its 4-byte class id and
// ABI-encoded data. The switch is exhaustive over the enumerated classes;
// a new class must be handled here before it can be encoded.
func toChainAssetType(t AssetType) ([4]byte, []byte, error) {
	switch t.Class {
	case AssetClassETH:
		return chain.ClassETH, nil, nil
	case AssetClassERC20:
		return chain.ClassERC20, chain.EncodeContractAssetData(t.Contract), nil
	case AssetClassERC721:
		return chain.ClassERC721, chain.EncodeTokenAssetData(t.Contract, t.TokenID.BigInt()), nil
	case AssetClassERC1155:
		return chain.ClassERC1155, chain.EncodeTokenAssetData(t.Contract, t.TokenID.BigInt()), nil
	case AssetClassCryptoPunks:
		return chain.ClassCryptoPunks, chain.EncodeTokenAssetData(t.Contract, t.TokenID.BigInt()), nil
	case AssetClassCollection:
		return chain.ClassCollection, chain.EncodeContractAssetData(t.Contract), nil
	}
	return [4]byte{}, nil, &UnsupportedAssetClassError{Class: t.Class}
}

func toChainAsset(a Asset) (chain.Asset, error) {
	class, data, err := toChainAssetType(a.Type)
	if err != nil {
		return chain.Asset{}, err
	}
	return chain.Asset{Class: class, Data: data, Value: a.Value.BigInt()}, nil
}

func toChainParts(parts []Part) []chain.Part {
	out := make([]chain.Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, chain.Part{Account: p.Account, Value: big.NewInt(int64(p.Value))})
	}
	return out
}

// toChainOrder lowers a model order into the ABI-level tuple, encoding the
// type-specific auxiliary payload.
func toChainOrder(o *Order) (chain.Order, error) {
	makeAsset, err := toChainAsset(o.Make)
	if err != nil {
		return chain.Order{}, err
	}
	takeAsset, err := toChainAsset(o.Take)
	if err != nil {
		return chain.Order{}, err
	}

	var dataType [4]byte
	var data []byte
	switch o.Type {
	case OrderTypeV1:
		dataType = chain.DataTypeV1
		data = chain.EncodeOrderDataV1(o.Data.Beneficiary, big.NewInt(int64(o.Data.Fee)))
	case OrderTypeV2:
		dataType = chain.DataTypeV2
		data, err = chain.EncodeOrderDataV2(toChainParts(o.Data.Payouts), toChainParts(o.Data.OriginFees))
		if err != nil {
			return chain.Order{}, err
		}
	case OrderTypeCryptoPunk:
		// Punk trades never reach a matching contract; no payload to encode.
	default:
		return chain.Order{}, &UnmatchedOrderTypeError{Type: o.Type}
	}

	return chain.Order{
		Maker:    o.Maker,
		Make:     makeAsset,
		Taker:    common.Address{},
		Take:     takeAsset,
		Salt:     o.Salt.BigInt(),
		DataType: dataType,
		Data:     data,
	}, nil
}
