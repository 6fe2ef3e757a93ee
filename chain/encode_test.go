package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testMaker    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testTaker    = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testContract = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testMarket   = common.HexToAddress("0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB")
)

func TestClassIDsMatchDeployedContracts(t *testing.T) {
	// The 4-byte identifiers are keccak256 prefixes the matching contracts
	// are deployed with; a drift here corrupts every order.
	assert.Equal(t, "aaaebeba", common.Bytes2Hex(ClassETH[:]))
	assert.Equal(t, "8ae85d84", common.Bytes2Hex(ClassERC20[:]))
	assert.Equal(t, "73ad2146", common.Bytes2Hex(ClassERC721[:]))
	assert.Equal(t, "973bb640", common.Bytes2Hex(ClassERC1155[:]))

	seen := map[[4]byte]bool{}
	for _, id := range [][4]byte{ClassETH, ClassERC20, ClassERC721, ClassERC1155, ClassCryptoPunks, ClassCollection, DataTypeV1, DataTypeV2} {
		assert.False(t, seen[id], "duplicate identifier %x", id)
		seen[id] = true
	}
}

func TestTokenAssetDataRoundTrip(t *testing.T) {
	tokenID := big.NewInt(42)
	data := EncodeTokenAssetData(testContract, tokenID)
	require.Len(t, data, 64)

	contract, decoded, err := DecodeTokenAssetData(data)
	require.NoError(t, err)
	assert.Equal(t, testContract, contract)
	assert.Zero(t, decoded.Cmp(tokenID))

	_, _, err = DecodeTokenAssetData([]byte{0x01})
	assert.Error(t, err)
}

func saleFillParams() FillParams {
	order := Order{
		Maker: testMaker,
		Make: Asset{
			Class: ClassERC721,
			Data:  EncodeTokenAssetData(testContract, big.NewInt(42)),
			Value: big.NewInt(1),
		},
		Take: Asset{
			Class: ClassETH,
			Value: big.NewInt(100),
		},
		Salt:     big.NewInt(7),
		DataType: DataTypeV2,
	}
	counter := Order{
		Maker: testTaker,
		Make:  order.Take,
		Take:  order.Make,
		Salt:  big.NewInt(0),
	}
	return FillParams{
		Order:     order,
		Signature: []byte{0x01, 0x02},
		Counter:   counter,
		Amount:    big.NewInt(1),
	}
}

func TestV2EncoderPacksMatchOrders(t *testing.T) {
	exchange := common.HexToAddress("0x00000000000000000000000000000000000000e2")
	encoder := V2Encoder{Exchange: exchange}

	to, data, err := encoder.EncodeFill(saleFillParams())
	require.NoError(t, err)
	assert.Equal(t, exchange, to)
	assert.Equal(t, GetExchangeV2ABI().Methods["matchOrders"].ID, data[:4])

	// Same params, same bytes.
	_, again, err := encoder.EncodeFill(saleFillParams())
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestV1EncoderDefaultsBeneficiaryToCaller(t *testing.T) {
	exchange := common.HexToAddress("0x00000000000000000000000000000000000000e1")
	encoder := V1Encoder{Exchange: exchange}

	p := saleFillParams()
	p.Order.DataType = DataTypeV1
	p.FeeBps = 250

	to, data, err := encoder.EncodeFill(p)
	require.NoError(t, err)
	assert.Equal(t, exchange, to)

	method := GetExchangeV1ABI().Methods["buy"]
	assert.Equal(t, method.ID, data[:4])

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, testTaker, args[4].(common.Address), "zero beneficiary falls back to the caller")
	assert.Zero(t, args[3].(*big.Int).Cmp(big.NewInt(250)))
}

func TestPunkEncoderBuy(t *testing.T) {
	encoder := PunkEncoder{Market: testMarket}
	p := saleFillParams()
	p.Order.Make.Class = ClassCryptoPunks
	p.Order.Make.Data = EncodeTokenAssetData(testMarket, big.NewInt(3100))
	p.Signature = nil

	to, data, err := encoder.EncodeFill(p)
	require.NoError(t, err)
	assert.Equal(t, testMarket, to)

	method := GetPunksMarketABI().Methods["buyPunk"]
	assert.Equal(t, method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Zero(t, args[0].(*big.Int).Cmp(big.NewInt(3100)))
}

func TestPunkEncoderAcceptBid(t *testing.T) {
	encoder := PunkEncoder{Market: testMarket}
	p := FillParams{
		Order: Order{
			Maker: testMaker,
			Make:  Asset{Class: ClassETH, Value: big.NewInt(10)},
			Take: Asset{
				Class: ClassCryptoPunks,
				Data:  EncodeTokenAssetData(testMarket, big.NewInt(3100)),
				Value: big.NewInt(1),
			},
			Salt: big.NewInt(7),
		},
		Amount: big.NewInt(1),
	}

	to, data, err := encoder.EncodeFill(p)
	require.NoError(t, err)
	assert.Equal(t, testMarket, to)

	method := GetPunksMarketABI().Methods["acceptBidForPunk"]
	assert.Equal(t, method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Zero(t, args[0].(*big.Int).Cmp(big.NewInt(3100)))
	assert.Zero(t, args[1].(*big.Int).Cmp(big.NewInt(10)), "min price is the bid's offered value")
}

func TestPunkEncoderRejectsNonPunkOrders(t *testing.T) {
	encoder := PunkEncoder{Market: testMarket}
	_, _, err := encoder.EncodeFill(saleFillParams())
	assert.Error(t, err)
}

func TestEncodeMintCalls(t *testing.T) {
	mint := &LazyMint{
		Contract:  testContract,
		TokenID:   big.NewInt(12345),
		URI:       "ipfs://QmToken",
		Creators:  []Part{{Account: testMaker, Value: big.NewInt(10000)}},
		Royalties: []Part{{Account: testMaker, Value: big.NewInt(500)}},
	}

	data, err := EncodeMint721Call(mint, nil, testMaker)
	require.NoError(t, err)
	assert.Equal(t, GetERC721MintABI().Methods["mintAndTransfer"].ID, data[:4])

	mint.Supply = big.NewInt(50)
	data, err = EncodeMint1155Call(mint, [][]byte{{0xab}}, testMaker, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, GetERC1155MintABI().Methods["mintAndTransfer"].ID, data[:4])
}

func TestEncodeOrderDataV2HandlesEmptyParts(t *testing.T) {
	data, err := EncodeOrderDataV2(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	withFees, err := EncodeOrderDataV2(
		[]Part{{Account: testMaker, Value: big.NewInt(10000)}},
		[]Part{{Account: testTaker, Value: big.NewInt(250)}},
	)
	require.NoError(t, err)
	assert.NotEqual(t, data, withFees)
}
