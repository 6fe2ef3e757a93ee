package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLazyMint() *LazyMint {
	return &LazyMint{
		Contract:  testContract,
		TokenID:   big.NewInt(12345),
		URI:       "ipfs://QmToken",
		Creators:  []Part{{Account: testMaker, Value: big.NewInt(10000)}},
		Royalties: []Part{{Account: testMaker, Value: big.NewInt(500)}},
	}
}

func TestTypedDataHashIsDeterministic(t *testing.T) {
	chainID := big.NewInt(1)

	first, err := testLazyMint().TypedDataHash(chainID)
	require.NoError(t, err)
	second, err := testLazyMint().TypedDataHash(chainID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTypedDataHashBindsEveryField(t *testing.T) {
	chainID := big.NewInt(1)
	base, err := testLazyMint().TypedDataHash(chainID)
	require.NoError(t, err)

	otherToken := testLazyMint()
	otherToken.TokenID = big.NewInt(12346)
	h, err := otherToken.TypedDataHash(chainID)
	require.NoError(t, err)
	assert.NotEqual(t, base, h, "token id is signed")

	otherURI := testLazyMint()
	otherURI.URI = "ipfs://QmOther"
	h, err = otherURI.TypedDataHash(chainID)
	require.NoError(t, err)
	assert.NotEqual(t, base, h, "URI is signed")

	otherChain, err := testLazyMint().TypedDataHash(big.NewInt(5))
	require.NoError(t, err)
	assert.NotEqual(t, base, otherChain, "domain binds the chain id")

	multi := testLazyMint()
	multi.Supply = big.NewInt(1)
	h, err = multi.TypedDataHash(chainID)
	require.NoError(t, err)
	assert.NotEqual(t, base, h, "1155 payloads use their own domain and type")
}

func TestPrivateKeySignerProducesRecoverableSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	chainID := big.NewInt(1)
	signer := NewPrivateKeySigner(key, chainID)

	mint := testLazyMint()
	signature, err := signer.SignLazyMint(context.Background(), mint)
	require.NoError(t, err)
	require.Len(t, signature, 65)
	assert.GreaterOrEqual(t, signature[64], byte(27), "recovery id uses the Ethereum convention")

	digest, err := mint.TypedDataHash(chainID)
	require.NoError(t, err)

	recoverable := make([]byte, 65)
	copy(recoverable, signature)
	recoverable[64] -= 27
	pub, err := crypto.SigToPub(digest.Bytes(), recoverable)
	require.NoError(t, err)
	assert.Equal(t, signer.From(), crypto.PubkeyToAddress(*pub))
}

func TestHashKeyIdentifiesOrders(t *testing.T) {
	order := Order{
		Maker: testMaker,
		Make: Asset{
			Class: ClassERC721,
			Data:  EncodeTokenAssetData(testContract, big.NewInt(42)),
			Value: big.NewInt(1),
		},
		Take: Asset{Class: ClassETH, Value: big.NewInt(100)},
		Salt: big.NewInt(7),
	}

	first, err := HashKey(order)
	require.NoError(t, err)
	second, err := HashKey(order)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reSalted := order
	reSalted.Salt = big.NewInt(8)
	h, err := HashKey(reSalted)
	require.NoError(t, err)
	assert.NotEqual(t, first, h, "salt distinguishes otherwise identical orders")

	// Values do not participate: fills change values, not identity.
	refilled := order
	refilled.Take.Value = big.NewInt(50)
	h, err = HashKey(refilled)
	require.NoError(t, err)
	assert.Equal(t, first, h)
}
