package nftexchange

import (
	"github.com/ethereum/go-ethereum/common"
)

// Direction distinguishes the two trade directions: a taker buying the
// maker's asset, or a taker accepting the maker's bid.
type Direction string

const (
	DirectionBuy       Direction = "BUY"
	DirectionAcceptBid Direction = "ACCEPT_BID"
)

// TransferMode selects how the asset moves during the trade.
type TransferMode string

const (
	TransferModeDirect       TransferMode = "DIRECT"
	TransferModeProxy        TransferMode = "PROXY"
	TransferModeLegacyMarket TransferMode = "LEGACY_MARKET"
)

// RoutingPlan names the transfer-proxy contract and strategy for one fill.
// CurrencyProxy is set when the currency side must be pulled from an ERC20
// balance; it stays zero when the caller attaches ETH directly.
type RoutingPlan struct {
	ProxyContract common.Address
	CurrencyProxy common.Address
	TransferMode  TransferMode
}

// ProxyRouter maps (asset-class pair, direction) to a routing plan. The
// proxy table is loaded once at construction and never mutated.
type ProxyRouter struct {
	nftProxy    common.Address
	erc20Proxy  common.Address
	punksMarket common.Address
}

// NewProxyRouter builds a router over the chain's deployed proxy contracts.
func NewProxyRouter(addrs ContractAddresses) *ProxyRouter {
	return &ProxyRouter{
		nftProxy:    common.HexToAddress(addrs.NFTTransferProxy),
		erc20Proxy:  common.HexToAddress(addrs.ERC20TransferProxy),
		punksMarket: common.HexToAddress(addrs.PunksMarket),
	}
}

// Route selects the transfer route for an order's asset-class pair. Exactly
// one side must be an NFT and the other a currency; anything else has no
// registered proxy pairing.
func (r *ProxyRouter) Route(makeType, takeType AssetType, dir Direction) (RoutingPlan, error) {
	if err := makeType.Validate(); err != nil {
		return RoutingPlan{}, err
	}
	if err := takeType.Validate(); err != nil {
		return RoutingPlan{}, err
	}

	var nft, currency AssetType
	switch {
	case makeType.IsNFT() && takeType.IsCurrency():
		nft, currency = makeType, takeType
	case takeType.IsNFT() && makeType.IsCurrency():
		nft, currency = takeType, makeType
	default:
		return RoutingPlan{}, &NoRouteError{Make: makeType.Class, Take: takeType.Class, Direction: dir}
	}

	switch nft.Class {
	case AssetClassCryptoPunks:
		// The legacy market does not implement the transfer-proxy interface;
		// it executes the whole trade itself. Treating a punk as a standard
		// ERC721 silently produces calls the market ignores.
		if currency.Class != AssetClassETH {
			return RoutingPlan{}, &NoRouteError{Make: makeType.Class, Take: takeType.Class, Direction: dir}
		}
		return RoutingPlan{
			ProxyContract: r.punksMarket,
			TransferMode:  TransferModeLegacyMarket,
		}, nil
	case AssetClassERC721, AssetClassERC1155, AssetClassCollection:
	case AssetClassETH, AssetClassERC20:
		// Unreachable: currency classes never classify as the NFT side.
		return RoutingPlan{}, &NoRouteError{Make: makeType.Class, Take: takeType.Class, Direction: dir}
	default:
		return RoutingPlan{}, &UnsupportedAssetClassError{Class: nft.Class}
	}

	plan := RoutingPlan{
		ProxyContract: r.nftProxy,
		TransferMode:  TransferModeProxy,
	}

	switch currency.Class {
	case AssetClassETH:
		if dir == DirectionAcceptBid {
			// ETH cannot be escrowed by an off-chain signature; bids are
			// placed in ERC20.
			return RoutingPlan{}, &NoRouteError{Make: makeType.Class, Take: takeType.Class, Direction: dir}
		}
		plan.CurrencyProxy = common.Address{}
	case AssetClassERC20:
		plan.CurrencyProxy = r.erc20Proxy
	}

	return plan, nil
}
