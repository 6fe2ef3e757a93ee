package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// classID derives the 4-byte asset-class or data-type identifier the
// matching contracts use: the first four bytes of keccak256(name).
func classID(name string) [4]byte {
	var id [4]byte
	copy(id[:], crypto.Keccak256([]byte(name))[:4])
	return id
}

// Asset-class identifiers as understood by the matching contracts.
var (
	ClassETH         = classID("ETH")
	ClassERC20       = classID("ERC20")
	ClassERC721      = classID("ERC721")
	ClassERC1155     = classID("ERC1155")
	ClassCryptoPunks = classID("CRYPTO_PUNKS")
	ClassCollection  = classID("COLLECTION")
)

// Order data-type identifiers.
var (
	DataTypeV1 = classID("V1")
	DataTypeV2 = classID("V2")
)

// ExchangeV2 ABI JSON for the matchOrders entry point.
const exchangeV2ABIJSON = `[
	{
		"inputs": [
			{
				"components": [
					{"internalType": "address", "name": "maker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "makeAsset", "type": "tuple"
					},
					{"internalType": "address", "name": "taker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "takeAsset", "type": "tuple"
					},
					{"internalType": "uint256", "name": "salt", "type": "uint256"},
					{"internalType": "uint256", "name": "start", "type": "uint256"},
					{"internalType": "uint256", "name": "end", "type": "uint256"},
					{"internalType": "bytes4", "name": "dataType", "type": "bytes4"},
					{"internalType": "bytes", "name": "data", "type": "bytes"}
				],
				"internalType": "struct LibOrder.Order", "name": "orderLeft", "type": "tuple"
			},
			{"internalType": "bytes", "name": "signatureLeft", "type": "bytes"},
			{
				"components": [
					{"internalType": "address", "name": "maker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "makeAsset", "type": "tuple"
					},
					{"internalType": "address", "name": "taker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "takeAsset", "type": "tuple"
					},
					{"internalType": "uint256", "name": "salt", "type": "uint256"},
					{"internalType": "uint256", "name": "start", "type": "uint256"},
					{"internalType": "uint256", "name": "end", "type": "uint256"},
					{"internalType": "bytes4", "name": "dataType", "type": "bytes4"},
					{"internalType": "bytes", "name": "data", "type": "bytes"}
				],
				"internalType": "struct LibOrder.Order", "name": "orderRight", "type": "tuple"
			},
			{"internalType": "bytes", "name": "signatureRight", "type": "bytes"}
		],
		"name": "matchOrders",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`

// ExchangeV1 ABI JSON for the legacy buy entry point.
const exchangeV1ABIJSON = `[
	{
		"inputs": [
			{
				"components": [
					{"internalType": "address", "name": "maker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "makeAsset", "type": "tuple"
					},
					{"internalType": "address", "name": "taker", "type": "address"},
					{
						"components": [
							{
								"components": [
									{"internalType": "bytes4", "name": "assetClass", "type": "bytes4"},
									{"internalType": "bytes", "name": "data", "type": "bytes"}
								],
								"internalType": "struct LibAsset.AssetType", "name": "assetType", "type": "tuple"
							},
							{"internalType": "uint256", "name": "value", "type": "uint256"}
						],
						"internalType": "struct LibAsset.Asset", "name": "takeAsset", "type": "tuple"
					},
					{"internalType": "uint256", "name": "salt", "type": "uint256"}
				],
				"internalType": "struct LibOrderV1.Order", "name": "order", "type": "tuple"
			},
			{"internalType": "bytes", "name": "signature", "type": "bytes"},
			{"internalType": "uint256", "name": "amount", "type": "uint256"},
			{"internalType": "uint256", "name": "buyerFee", "type": "uint256"},
			{"internalType": "address", "name": "beneficiary", "type": "address"}
		],
		"name": "buy",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`

// CryptoPunksMarket ABI JSON. The legacy market implements the full trade
// itself and has no approve/transferFrom surface.
const punksMarketABIJSON = `[
	{
		"inputs": [{"internalType": "uint256", "name": "punkIndex", "type": "uint256"}],
		"name": "buyPunk",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "punkIndex", "type": "uint256"},
			{"internalType": "uint256", "name": "minPrice", "type": "uint256"}
		],
		"name": "acceptBidForPunk",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"name": "punksOfferedForSale",
		"outputs": [
			{"internalType": "bool", "name": "isForSale", "type": "bool"},
			{"internalType": "uint256", "name": "punkIndex", "type": "uint256"},
			{"internalType": "address", "name": "seller", "type": "address"},
			{"internalType": "uint256", "name": "minValue", "type": "uint256"},
			{"internalType": "address", "name": "onlySellTo", "type": "address"}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

// ERC721 mintAndTransfer ABI JSON.
const erc721MintABIJSON = `[
	{
		"inputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "string", "name": "tokenURI", "type": "string"},
					{
						"components": [
							{"internalType": "address", "name": "account", "type": "address"},
							{"internalType": "uint96", "name": "value", "type": "uint96"}
						],
						"internalType": "struct LibPart.Part[]", "name": "creators", "type": "tuple[]"
					},
					{
						"components": [
							{"internalType": "address", "name": "account", "type": "address"},
							{"internalType": "uint96", "name": "value", "type": "uint96"}
						],
						"internalType": "struct LibPart.Part[]", "name": "royalties", "type": "tuple[]"
					},
					{"internalType": "bytes[]", "name": "signatures", "type": "bytes[]"}
				],
				"internalType": "struct LibERC721LazyMint.Mint721Data", "name": "data", "type": "tuple"
			},
			{"internalType": "address", "name": "to", "type": "address"}
		],
		"name": "mintAndTransfer",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// ERC1155 mintAndTransfer ABI JSON.
const erc1155MintABIJSON = `[
	{
		"inputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "string", "name": "tokenURI", "type": "string"},
					{"internalType": "uint256", "name": "supply", "type": "uint256"},
					{
						"components": [
							{"internalType": "address", "name": "account", "type": "address"},
							{"internalType": "uint96", "name": "value", "type": "uint96"}
						],
						"internalType": "struct LibPart.Part[]", "name": "creators", "type": "tuple[]"
					},
					{
						"components": [
							{"internalType": "address", "name": "account", "type": "address"},
							{"internalType": "uint96", "name": "value", "type": "uint96"}
						],
						"internalType": "struct LibPart.Part[]", "name": "royalties", "type": "tuple[]"
					},
					{"internalType": "bytes[]", "name": "signatures", "type": "bytes[]"}
				],
				"internalType": "struct LibERC1155LazyMint.Mint1155Data", "name": "data", "type": "tuple"
			},
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "uint256", "name": "amount", "type": "uint256"}
		],
		"name": "mintAndTransfer",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// ERC721 safeTransferFrom ABI JSON.
const erc721TransferABIJSON = `[
	{
		"inputs": [
			{"internalType": "address", "name": "from", "type": "address"},
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "uint256", "name": "tokenId", "type": "uint256"}
		],
		"name": "safeTransferFrom",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// ERC1155 safeTransferFrom ABI JSON.
const erc1155TransferABIJSON = `[
	{
		"inputs": [
			{"internalType": "address", "name": "from", "type": "address"},
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "uint256", "name": "id", "type": "uint256"},
			{"internalType": "uint256", "name": "amount", "type": "uint256"},
			{"internalType": "bytes", "name": "data", "type": "bytes"}
		],
		"name": "safeTransferFrom",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// GetExchangeV2ABI returns the parsed ExchangeV2 ABI.
func GetExchangeV2ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(exchangeV2ABIJSON))
	if err != nil {
		panic("failed to parse ExchangeV2 ABI: " + err.Error())
	}
	return parsed
}

// GetExchangeV1ABI returns the parsed ExchangeV1 ABI.
func GetExchangeV1ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(exchangeV1ABIJSON))
	if err != nil {
		panic("failed to parse ExchangeV1 ABI: " + err.Error())
	}
	return parsed
}

// GetPunksMarketABI returns the parsed CryptoPunksMarket ABI.
func GetPunksMarketABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(punksMarketABIJSON))
	if err != nil {
		panic("failed to parse CryptoPunksMarket ABI: " + err.Error())
	}
	return parsed
}

// GetERC721MintABI returns the parsed ERC721 mintAndTransfer ABI.
func GetERC721MintABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc721MintABIJSON))
	if err != nil {
		panic("failed to parse ERC721 mint ABI: " + err.Error())
	}
	return parsed
}

// GetERC1155MintABI returns the parsed ERC1155 mintAndTransfer ABI.
func GetERC1155MintABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc1155MintABIJSON))
	if err != nil {
		panic("failed to parse ERC1155 mint ABI: " + err.Error())
	}
	return parsed
}

// GetERC721TransferABI returns the parsed ERC721 safeTransferFrom ABI.
func GetERC721TransferABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc721TransferABIJSON))
	if err != nil {
		panic("failed to parse ERC721 transfer ABI: " + err.Error())
	}
	return parsed
}

// GetERC1155TransferABI returns the parsed ERC1155 safeTransferFrom ABI.
func GetERC1155TransferABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc1155TransferABIJSON))
	if err != nil {
		panic("failed to parse ERC1155 transfer ABI: " + err.Error())
	}
	return parsed
}
