package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultGasLimit applies when no gas limit is configured. Gas estimation
// heuristics are out of scope.
const DefaultGasLimit uint64 = 500000

const receiptPollInterval = 2 * time.Second

// SubmissionError reports a transaction the provider rejected before
// inclusion. The underlying cause is preserved via Unwrap.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ChainRevertError reports a transaction that was included but reverted.
type ChainRevertError struct {
	TxHash common.Hash
	Reason string
}

func (e *ChainRevertError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("transaction reverted: %s", e.TxHash.Hex())
	}
	return fmt.Sprintf("transaction reverted: %s (%s)", e.TxHash.Hex(), e.Reason)
}

// TxHandle wraps a submitted transaction. Wait suspends until the network
// reports confirmation; no retries happen at this layer.
type TxHandle interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Sender broadcasts prepared contract calls.
type Sender interface {
	Send(ctx context.Context, to common.Address, data []byte, value *big.Int) (TxHandle, error)
	From() common.Address
}

// NodeSender signs transactions with a local key and submits them through an
// Ethereum node.
type NodeSender struct {
	client   *ethclient.Client
	key      *ecdsa.PrivateKey
	chainID  *big.Int
	gasLimit uint64
}

// NewNodeSender connects to the node and binds the signing key. The chain id
// is read from the node once and never re-fetched.
func NewNodeSender(ctx context.Context, rpcURL string, key *ecdsa.PrivateKey, gasLimit uint64) (*NodeSender, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	return &NodeSender{
		client:   client,
		key:      key,
		chainID:  chainID,
		gasLimit: gasLimit,
	}, nil
}

// From returns the address of the signing key.
func (s *NodeSender) From() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// ChainID returns the connected network's chain id.
func (s *NodeSender) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// Send signs and broadcasts a call. A rejected send surfaces as
// *SubmissionError; no transaction is pending in that case.
func (s *NodeSender) Send(ctx context.Context, to common.Address, data []byte, value *big.Int) (TxHandle, error) {
	nonce, err := s.client.PendingNonceAt(ctx, s.From())
	if err != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("failed to get nonce: %w", err)}
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("failed to get gas price: %w", err)}
	}

	if value == nil {
		value = big.NewInt(0)
	}
	tx := types.NewTransaction(nonce, to, value, s.gasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(s.chainID), s.key)
	if err != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("failed to sign transaction: %w", err)}
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, &SubmissionError{Err: err}
	}

	return &nodeTxHandle{client: s.client, tx: signedTx}, nil
}

// Close closes the underlying RPC connection.
func (s *NodeSender) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

type nodeTxHandle struct {
	client *ethclient.Client
	tx     *types.Transaction
}

func (h *nodeTxHandle) Hash() common.Hash {
	return h.tx.Hash()
}

// Wait polls for the receipt until the transaction confirms or the context
// ends. A status-0 receipt surfaces as *ChainRevertError.
func (h *nodeTxHandle) Wait(ctx context.Context) (*types.Receipt, error) {
	for {
		receipt, err := h.client.TransactionReceipt(ctx, h.tx.Hash())
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, &ChainRevertError{TxHash: h.tx.Hash()}
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for transaction %s: %w", h.tx.Hash().Hex(), ctx.Err())
		case <-time.After(receiptPollInterval):
		}
	}
}
