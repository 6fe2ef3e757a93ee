package nftexchange

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/thanhpk/randstr"
)

// ZeroAddress is the canonical empty address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// FormatItemID renders the canonical item identifier, identical for lazy and
// on-chain minted tokens: "<contract>:<tokenId>".
func FormatItemID(contract common.Address, tokenID *big.Int) string {
	return fmt.Sprintf("%s:%s", contract.Hex(), tokenID.String())
}

// ParseItemID is the inverse of FormatItemID.
func ParseItemID(itemID string) (common.Address, *big.Int, error) {
	parts := strings.SplitN(itemID, ":", 2)
	if len(parts) != 2 || !common.IsHexAddress(parts[0]) {
		return common.Address{}, nil, &InvalidParamError{Message: fmt.Sprintf("invalid item id: %q", itemID)}
	}
	tokenID, ok := new(big.Int).SetString(parts[1], 10)
	if !ok || tokenID.Sign() < 0 {
		return common.Address{}, nil, &InvalidParamError{Message: fmt.Sprintf("invalid token id in item id: %q", itemID)}
	}
	return common.HexToAddress(parts[0]), tokenID, nil
}

// GenerateOrderSalt produces a random 256-bit salt. Salts must be unique per
// maker to prevent signature replay.
func GenerateOrderSalt() *Uint256 {
	salt := new(Uint256)
	salt.Int.SetBytes(randstr.Bytes(32))
	return salt
}
