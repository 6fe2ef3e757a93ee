package nftexchange

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// OrderBookService exposes the order-book ledger's remaining fillable
// amount. The ledger is external; remaining amounts are never recomputed
// locally.
type OrderBookService interface {
	GetRemainingFill(ctx context.Context, order *Order) (*big.Int, error)
}

// FillValue is the outcome of the fee/value calculation for one fill:
// the native currency to attach and the fee schedule the matching contract
// will deduct.
type FillValue struct {
	NativeValue    *big.Int
	FeeBasisPoints int
}

// FeeCalculator computes attached value and fee schedules. The fee
// configuration is immutable after construction.
type FeeCalculator struct {
	fees      FeeConfig
	orderBook OrderBookService
}

// NewFeeCalculator builds a calculator over the chain's fee configuration.
func NewFeeCalculator(fees FeeConfig, orderBook OrderBookService) *FeeCalculator {
	return &FeeCalculator{fees: fees, orderBook: orderBook}
}

// ComputeValue determines the native value to attach for a fill and reports
// the applicable fee in basis points. The native value is the ETH side's
// value scaled to the fill amount with floor rounding, so partial fills
// never overpay; a full fill yields the ETH side's value exactly.
func (c *FeeCalculator) ComputeValue(ctx context.Context, order *Order, fillAmount *big.Int) (FillValue, error) {
	if fillAmount == nil || fillAmount.Sign() <= 0 {
		return FillValue{}, &InvalidParamError{Message: "fill amount must be positive"}
	}

	remaining, err := c.orderBook.GetRemainingFill(ctx, order)
	if err != nil {
		return FillValue{}, err
	}
	if fillAmount.Cmp(remaining) > 0 {
		return FillValue{}, &InsufficientFillAmountError{
			Requested: new(big.Int).Set(fillAmount),
			Remaining: remaining,
		}
	}

	feeBps, err := c.feeBasisPoints(order)
	if err != nil {
		return FillValue{}, err
	}

	native := big.NewInt(0)
	switch {
	case order.Take.Type.Class == AssetClassETH:
		native, err = proportion(order.Take.Value.BigInt(), fillAmount, order.Make.Value.BigInt())
	case order.Make.Type.Class == AssetClassETH:
		native, err = proportion(order.Make.Value.BigInt(), fillAmount, order.Take.Value.BigInt())
	}
	if err != nil {
		return FillValue{}, err
	}

	return FillValue{NativeValue: native, FeeBasisPoints: feeBps}, nil
}

// feeBasisPoints reads the fee schedule per order type: V1 orders embed it
// in their data, V2 orders pay the global protocol fee, punk trades carry
// no protocol fee.
func (c *FeeCalculator) feeBasisPoints(order *Order) (int, error) {
	switch order.Type {
	case OrderTypeV1:
		return order.Data.Fee, nil
	case OrderTypeV2:
		return c.fees.V2ProtocolFeeBps, nil
	case OrderTypeCryptoPunk:
		return 0, nil
	}
	return 0, &UnmatchedOrderTypeError{Type: order.Type}
}

// proportion computes value * amount / total with floor rounding.
func proportion(value, amount, total *big.Int) (*big.Int, error) {
	if total.Sign() == 0 {
		return nil, &InvalidParamError{Message: "order NFT side has zero value"}
	}
	scaled := new(big.Int).Mul(value, amount)
	return scaled.Div(scaled, total), nil
}

// ExpectedProceeds reports what a seller receives after the fee is deducted
// contract-side, floored to a whole wei. Reporting only: fees are never
// applied to the attached native value.
func ExpectedProceeds(value *big.Int, feeBps int) *big.Int {
	v := decimal.NewFromBigInt(value, 0)
	fee := v.Mul(decimal.New(int64(feeBps), -4))
	return v.Sub(fee).Floor().BigInt()
}
