package nftexchange

import (
	"context"

	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// FillRequest asks for a fill of amount units of the order's NFT side.
type FillRequest struct {
	Order  *Order
	Amount *big.Int
}

// OrderFiller turns a maker's signed order plus a fill amount into a
// ready-to-submit matching-contract call. It holds no mutable state between
// invocations; racing fills against the same order are resolved on chain.
type OrderFiller struct {
	router   *ProxyRouter
	fees     *FeeCalculator
	sender   chain.Sender
	encoders map[OrderType]chain.CallEncoder
	taker    common.Address
	log      *logrus.Entry
}

// NewOrderFiller wires the routing table and the per-order-type call
// encoders for one chain.
func NewOrderFiller(addrs ContractAddresses, fees *FeeCalculator, sender chain.Sender, logger *logrus.Logger) *OrderFiller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderFiller{
		router: NewProxyRouter(addrs),
		fees:   fees,
		sender: sender,
		encoders: map[OrderType]chain.CallEncoder{
			OrderTypeV1:         chain.V1Encoder{Exchange: common.HexToAddress(addrs.ExchangeV1)},
			OrderTypeV2:         chain.V2Encoder{Exchange: common.HexToAddress(addrs.ExchangeV2)},
			OrderTypeCryptoPunk: chain.PunkEncoder{Market: common.HexToAddress(addrs.PunksMarket)},
		},
		taker: sender.From(),
		log:   logger.WithField("component", "filler"),
	}
}

// fillDirection infers the trade direction from the order shape: a sale
// offers the NFT on the make side, a bid asks for it on the take side.
func fillDirection(o *Order) (Direction, error) {
	switch {
	case o.Make.Type.IsNFT():
		return DirectionBuy, nil
	case o.Take.Type.IsNFT():
		return DirectionAcceptBid, nil
	}
	return "", &NoRouteError{Make: o.Make.Type.Class, Take: o.Take.Type.Class}
}

// GetTransactionData builds the matching call without submitting it.
// It is a pure dry run: identical requests produce identical call data.
func (f *OrderFiller) GetTransactionData(ctx context.Context, req FillRequest) (*TransactionRequest, error) {
	return f.prepare(ctx, req)
}

// Buy fills a sale order: the caller acquires the make-side NFT by paying
// the take side. Either a transaction handle is returned or nothing was
// submitted.
func (f *OrderFiller) Buy(ctx context.Context, req FillRequest) (chain.TxHandle, error) {
	if req.Order == nil {
		return nil, &InvalidParamError{Message: "order is required"}
	}
	if !req.Order.Make.Type.IsNFT() {
		return nil, ErrNotSaleOrder
	}
	return f.submit(ctx, req, DirectionBuy)
}

// AcceptBid fills a bid order: the caller supplies the take-side NFT and
// receives the make-side currency. The caller's asset is the one moving
// into the proxy, so routing flips relative to Buy.
func (f *OrderFiller) AcceptBid(ctx context.Context, req FillRequest) (chain.TxHandle, error) {
	if req.Order == nil {
		return nil, &InvalidParamError{Message: "order is required"}
	}
	if !req.Order.Take.Type.IsNFT() {
		return nil, ErrNotBidOrder
	}
	return f.submit(ctx, req, DirectionAcceptBid)
}

func (f *OrderFiller) submit(ctx context.Context, req FillRequest, dir Direction) (chain.TxHandle, error) {
	txReq, err := f.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	handle, err := f.sender.Send(ctx, txReq.To, txReq.Data, txReq.Value)
	if err != nil {
		return nil, err
	}

	f.log.WithFields(logrus.Fields{
		"tx_hash":    handle.Hash().Hex(),
		"order_type": string(req.Order.Type),
		"direction":  string(dir),
		"value":      txReq.Value.String(),
	}).Info("order fill submitted")

	return handle, nil
}

// prepare runs the full fill pipeline: classify, route, compute value,
// synthesize the counter-order and encode the call.
func (f *OrderFiller) prepare(ctx context.Context, req FillRequest) (*TransactionRequest, error) {
	order := req.Order
	if order == nil {
		return nil, &InvalidParamError{Message: "order is required"}
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.Type != OrderTypeCryptoPunk && len(order.Signature) == 0 {
		return nil, ErrMissingSignature
	}

	dir, err := fillDirection(order)
	if err != nil {
		return nil, err
	}

	plan, err := f.router.Route(order.Make.Type, order.Take.Type, dir)
	if err != nil {
		return nil, err
	}

	fill, err := f.fees.ComputeValue(ctx, order, req.Amount)
	if err != nil {
		return nil, err
	}

	counter, err := order.invert(f.taker, req.Amount)
	if err != nil {
		return nil, err
	}

	// The route decides the target contract: a punk asset settles on the
	// legacy market no matter what type the order declares.
	encoderKey := order.Type
	if plan.TransferMode == TransferModeLegacyMarket {
		encoderKey = OrderTypeCryptoPunk
	}
	encoder, ok := f.encoders[encoderKey]
	if !ok {
		return nil, &UnmatchedOrderTypeError{Type: order.Type}
	}

	chainOrder, err := toChainOrder(order)
	if err != nil {
		return nil, err
	}
	chainCounter, err := toChainOrder(counter)
	if err != nil {
		return nil, err
	}

	to, data, err := encoder.EncodeFill(chain.FillParams{
		Order:     chainOrder,
		Signature: order.Signature,
		Counter:   chainCounter,
		Amount:    req.Amount,
		FeeBps:    fill.FeeBasisPoints,
	})
	if err != nil {
		return nil, err
	}

	// Native value is attached only when the caller is the one paying ETH:
	// a buy whose take side is ETH. Accepting a bid never attaches value.
	value := big.NewInt(0)
	if dir == DirectionBuy && order.Take.Type.Class == AssetClassETH {
		value = fill.NativeValue
	}

	f.log.WithFields(logrus.Fields{
		"direction":     string(dir),
		"transfer_mode": string(plan.TransferMode),
		"fee_bps":       fill.FeeBasisPoints,
	}).Debug("fill prepared")

	return &TransactionRequest{To: to, Data: data, Value: value}, nil
}
