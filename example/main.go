// Example usage of the NFT exchange SDK.
package main

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nftexchange "github.com/mintara/nft-exchange-sdk-go"
)

func main() {
	config := nftexchange.ClientConfig{
		APIHost:    "https://api.example-protocol.org", // Replace with actual API host
		ChainID:    nftexchange.ChainIDMainnet,
		RPCURL:     "https://mainnet.infura.io/v3/your-project-id", // Replace with actual RPC URL
		PrivateKey: "your-private-key-here",                        // Replace with actual private key
	}

	client, err := nftexchange.NewClient(config)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	// Example: preview the fill of a sale order without submitting it.
	order := &nftexchange.Order{
		Maker: common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Make: nftexchange.Asset{
			Type: nftexchange.AssetType{
				Class:    nftexchange.AssetClassERC721,
				Contract: common.HexToAddress("0x0000000000000000000000000000000000000002"),
				TokenID:  nftexchange.NewUint256(big.NewInt(42)),
			},
			Value: nftexchange.NewUint256(big.NewInt(1)),
		},
		Take: nftexchange.Asset{
			Type:  nftexchange.AssetType{Class: nftexchange.AssetClassETH},
			Value: nftexchange.NewUint256(big.NewInt(1000000000000000000)), // 1 ETH
		},
		Salt:      nftexchange.GenerateOrderSalt(),
		Type:      nftexchange.OrderTypeV2,
		Data:      nftexchange.OrderData{Kind: "V2"},
		Signature: []byte{0x01}, // Replace with the maker's actual signature
	}

	preview, err := client.GetTransactionData(ctx, nftexchange.FillRequest{
		Order:  order,
		Amount: big.NewInt(1),
	})
	if err != nil {
		log.Printf("Failed to build transaction data: %v", err)
	} else {
		fmt.Printf("Fill call: to=%s value=%s data=%d bytes\n", preview.To.Hex(), preview.Value, len(preview.Data))
	}

	// Example: buy the NFT.
	handle, err := client.Buy(ctx, nftexchange.FillRequest{Order: order, Amount: big.NewInt(1)})
	if err != nil {
		log.Printf("Failed to buy: %v", err)
	} else {
		receipt, err := handle.Wait(ctx)
		if err != nil {
			log.Printf("Buy transaction failed: %v", err)
		} else {
			fmt.Printf("Bought in block %d (tx %s)\n", receipt.BlockNumber, handle.Hash().Hex())
		}
	}

	// Example: lazy mint a token and wait for the indexer to pick it up.
	creator := common.HexToAddress("0x0000000000000000000000000000000000000003")
	minted, err := client.Mint(ctx, &nftexchange.MintRequest{
		Lazy: true,
		Collection: nftexchange.Collection{
			ID:               common.HexToAddress("0x0000000000000000000000000000000000000004"),
			Type:             nftexchange.CollectionTypeERC721,
			SupportsLazyMint: true,
		},
		URI:      "ipfs://QmExampleTokenMetadata",
		Creators: []nftexchange.Part{{Account: creator, Value: 10000}},
		Royalties: []nftexchange.Part{
			{Account: creator, Value: 500}, // 5%
		},
	})
	if err != nil {
		log.Printf("Failed to mint: %v", err)
	} else {
		fmt.Printf("Minted %s (%s)\n", minted.ItemID, minted.Type)

		item, err := client.WaitMinted(ctx, minted.ItemID)
		if err != nil {
			log.Printf("Item not indexed yet: %v", err)
		} else {
			fmt.Printf("Indexed item: %+v\n", item)
		}
	}
}
