package nftexchange

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ChainID represents a blockchain chain ID.
type ChainID int

const (
	ChainIDMainnet ChainID = 1
	ChainIDGoerli  ChainID = 5
	ChainIDDev     ChainID = 300500 // local e2e network
)

// SupportedChainIDs lists all supported chain IDs.
var SupportedChainIDs = []ChainID{ChainIDMainnet, ChainIDGoerli, ChainIDDev}

// ContractAddresses holds the protocol contract addresses for one chain.
type ContractAddresses struct {
	ExchangeV1         string
	ExchangeV2         string
	NFTTransferProxy   string
	ERC20TransferProxy string
	PunksMarket        string
}

// DefaultContractAddresses maps chain IDs to their deployed protocol
// contracts. Goerli and dev addresses are placeholders overridden in tests
// and local deployments.
var DefaultContractAddresses = map[ChainID]ContractAddresses{
	ChainIDMainnet: {
		ExchangeV1:         "0x09EaB21c40743B2364b94345419138eF80f39e30",
		ExchangeV2:         "0x9757F2d2b135150BBeb65308D4a91804107cd8D6",
		NFTTransferProxy:   "0x4feE7B061C97C9c496b01DbcE9CDb10c02f0a0Be",
		ERC20TransferProxy: "0xb8e4526e0da700E9eF1F879af713D691F81507d8",
		PunksMarket:        "0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB",
	},
	ChainIDGoerli: {
		ExchangeV1:         "0x33Aef288C093Bf7b36fBe15c3190e616a993b0AD",
		ExchangeV2:         "0x02afbD43cAD367fcB71305a2dfB9A3928218f0c1",
		NFTTransferProxy:   "0x21B0B84FfAB5A8c48291f5eC9D9FDb9aef574052",
		ERC20TransferProxy: "0x17cEf9a8bf107D58E87c170be1652c06390BD990",
		PunksMarket:        "0x85252f525456D3fCe3654e56f6EAF034075e231C",
	},
	ChainIDDev: {},
}

// FeeConfig holds the protocol fee schedule. V1 orders embed their fee in
// the order data; V2 orders pay the global protocol fee configured here.
type FeeConfig struct {
	V2ProtocolFeeBps int
}

// DefaultFees maps chain IDs to their protocol fee configuration.
var DefaultFees = map[ChainID]FeeConfig{
	ChainIDMainnet: {V2ProtocolFeeBps: 0},
	ChainIDGoerli:  {V2ProtocolFeeBps: 0},
	ChainIDDev:     {V2ProtocolFeeBps: 100},
}

// ClientConfig holds configuration for creating a Client. Address and fee
// overrides default to the chain's deployed protocol contracts. The
// configuration is read once at construction and never mutated; build a new
// client to reconfigure.
type ClientConfig struct {
	APIHost    string
	ChainID    ChainID
	RPCURL     string
	PrivateKey string

	Addresses *ContractAddresses
	Fees      *FeeConfig

	// GasLimit applies to every submitted transaction. Zero selects the
	// default; gas estimation is out of scope.
	GasLimit uint64

	APITimeout time.Duration
	Logger     *logrus.Logger
}
