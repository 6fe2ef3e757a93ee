package nftexchange

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrMissingSignature is returned when an order without a maker signature
	// is submitted for an order type that requires one.
	ErrMissingSignature = errors.New("order signature is required for on-chain submission")

	// ErrNotSaleOrder is returned by Buy when the order's make side is not an NFT.
	ErrNotSaleOrder = errors.New("order is not a sale: make side is not an NFT")

	// ErrNotBidOrder is returned by AcceptBid when the order's take side is not an NFT.
	ErrNotBidOrder = errors.New("order is not a bid: take side is not an NFT")

	// ErrLazyMintUnsupported is returned when a lazy mint is requested against
	// a collection that does not support lazy minting.
	ErrLazyMintUnsupported = errors.New("collection does not support lazy minting")
)

// InvalidParamError represents an invalid parameter error with context.
type InvalidParamError struct {
	Message string
}

func (e *InvalidParamError) Error() string {
	return e.Message
}

// OpenAPIError represents a protocol API error with context.
type OpenAPIError struct {
	Message string
}

func (e *OpenAPIError) Error() string {
	return e.Message
}

// UnsupportedAssetClassError reports an asset class outside the enumerated set.
// It indicates a programming or configuration error and is never retried.
type UnsupportedAssetClassError struct {
	Class AssetClass
}

func (e *UnsupportedAssetClassError) Error() string {
	return fmt.Sprintf("unsupported asset class: %q", string(e.Class))
}

// NoRouteError reports a valid asset-class pair for which no transfer proxy
// is registered. It indicates missing protocol support for the pairing.
type NoRouteError struct {
	Make      AssetClass
	Take      AssetClass
	Direction Direction
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no transfer route for %s/%s (%s)", e.Make, e.Take, e.Direction)
}

// InsufficientFillAmountError reports a fill request that exceeds the
// order's remaining fillable quantity. Callers may recover by reducing
// the requested amount.
type InsufficientFillAmountError struct {
	Requested *big.Int
	Remaining *big.Int
}

func (e *InsufficientFillAmountError) Error() string {
	return fmt.Sprintf("fill amount %s exceeds remaining fillable %s", e.Requested, e.Remaining)
}

// UnmatchedOrderTypeError reports an order type with no registered encoder.
type UnmatchedOrderTypeError struct {
	Type OrderType
}

func (e *UnmatchedOrderTypeError) Error() string {
	return fmt.Sprintf("no encoder registered for order type %q", string(e.Type))
}
