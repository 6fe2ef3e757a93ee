package nftexchange

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

var testAddrs = ContractAddresses{
	ExchangeV1:         "0x00000000000000000000000000000000000000e1",
	ExchangeV2:         "0x00000000000000000000000000000000000000e2",
	NFTTransferProxy:   "0x00000000000000000000000000000000000000a1",
	ERC20TransferProxy: "0x00000000000000000000000000000000000000a2",
	PunksMarket:        "0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB",
}

var (
	makerAddr    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	takerAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	nftContract  = common.HexToAddress("0x3333333333333333333333333333333333333333")
	erc20Token   = common.HexToAddress("0x4444444444444444444444444444444444444444")
	punksMarket  = common.HexToAddress(testAddrs.PunksMarket)
	testFeeCfg   = FeeConfig{V2ProtocolFeeBps: 100}
	oneSignature = []byte{0x01, 0x02, 0x03}
)

func ethAsset(value int64) Asset {
	return Asset{
		Type:  AssetType{Class: AssetClassETH},
		Value: NewUint256(big.NewInt(value)),
	}
}

func erc20Asset(value int64) Asset {
	return Asset{
		Type:  AssetType{Class: AssetClassERC20, Contract: erc20Token},
		Value: NewUint256(big.NewInt(value)),
	}
}

func erc721Asset(tokenID int64) Asset {
	return Asset{
		Type: AssetType{
			Class:    AssetClassERC721,
			Contract: nftContract,
			TokenID:  NewUint256(big.NewInt(tokenID)),
		},
		Value: NewUint256(big.NewInt(1)),
	}
}

func erc1155Asset(tokenID, value int64) Asset {
	return Asset{
		Type: AssetType{
			Class:    AssetClassERC1155,
			Contract: nftContract,
			TokenID:  NewUint256(big.NewInt(tokenID)),
		},
		Value: NewUint256(big.NewInt(value)),
	}
}

func punkAsset(punkIndex int64) Asset {
	return Asset{
		Type: AssetType{
			Class:    AssetClassCryptoPunks,
			Contract: punksMarket,
			TokenID:  NewUint256(big.NewInt(punkIndex)),
		},
		Value: NewUint256(big.NewInt(1)),
	}
}

func saleOrder(make, take Asset, orderType OrderType) *Order {
	o := &Order{
		Maker:     makerAddr,
		Make:      make,
		Take:      take,
		Salt:      NewUint256(big.NewInt(7)),
		Type:      orderType,
		Data:      OrderData{Kind: string(orderType)},
		Signature: oneSignature,
	}
	if orderType == OrderTypeCryptoPunk {
		o.Signature = nil
	}
	return o
}

type sentCall struct {
	to    common.Address
	data  []byte
	value *big.Int
}

type fakeHandle struct {
	hash common.Hash
}

func (h fakeHandle) Hash() common.Hash {
	return h.hash
}

func (h fakeHandle) Wait(_ context.Context) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

type fakeSender struct {
	from  common.Address
	calls []sentCall
	err   error
}

func (f *fakeSender) Send(_ context.Context, to common.Address, data []byte, value *big.Int) (chain.TxHandle, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, sentCall{to: to, data: data, value: value})
	return fakeHandle{hash: common.BytesToHash([]byte{byte(len(f.calls))})}, nil
}

func (f *fakeSender) From() common.Address {
	return f.from
}

type fakeOrderBook struct {
	remaining *big.Int
	err       error
}

func (f *fakeOrderBook) GetRemainingFill(_ context.Context, _ *Order) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.remaining, nil
}

func newTestFiller(remaining int64) (*OrderFiller, *fakeSender) {
	sender := &fakeSender{from: takerAddr}
	fees := NewFeeCalculator(testFeeCfg, &fakeOrderBook{remaining: big.NewInt(remaining)})
	return NewOrderFiller(testAddrs, fees, sender, nil), sender
}
