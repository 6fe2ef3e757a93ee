package nftexchange

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/mintara/nft-exchange-sdk-go/chain"
)

// Transferrer moves owned tokens directly to a recipient, outside any order.
// The token contract itself is the call target; no proxy is involved.
type Transferrer struct {
	sender chain.Sender
	log    *logrus.Entry
}

// NewTransferrer wires a transferrer over the caller's signing key.
func NewTransferrer(sender chain.Sender, logger *logrus.Logger) *Transferrer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Transferrer{
		sender: sender,
		log:    logger.WithField("component", "transferrer"),
	}
}

// Transfer sends the token to the recipient via the standard's
// safeTransferFrom. amount applies to ERC1155 tokens only; nil moves a
// single unit.
func (t *Transferrer) Transfer(ctx context.Context, asset AssetType, to common.Address, amount *big.Int) (chain.TxHandle, error) {
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	if to == (common.Address{}) {
		return nil, &InvalidParamError{Message: "transfer requires a recipient"}
	}

	from := t.sender.From()
	var data []byte
	var err error
	switch asset.Class {
	case AssetClassERC721:
		data, err = chain.EncodeERC721Transfer(from, to, asset.TokenID.BigInt())
	case AssetClassERC1155:
		if amount == nil {
			amount = big.NewInt(1)
		}
		if amount.Sign() <= 0 {
			return nil, &InvalidParamError{Message: "transfer amount must be positive"}
		}
		data, err = chain.EncodeERC1155Transfer(from, to, asset.TokenID.BigInt(), amount)
	default:
		return nil, &InvalidParamError{
			Message: fmt.Sprintf("transfer supports ERC721 and ERC1155 assets, got %s", asset.Class),
		}
	}
	if err != nil {
		return nil, err
	}

	handle, err := t.sender.Send(ctx, asset.Contract, data, nil)
	if err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"tx_hash":  handle.Hash().Hex(),
		"contract": asset.Contract.Hex(),
		"token_id": asset.TokenID.String(),
	}).Info("transfer submitted")

	return handle, nil
}
