package eventExtractor

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdTopic   = common.HexToHash("0xc1")
	liquidityTopic = common.HexToHash("0xc2")
	token          = common.HexToAddress("0x00000000000000000000000000000000000000aa")
)

// decodes by first topic only
type topicDecoder struct{}

func (topicDecoder) DecodeLog(lg types.Log) (string, map[string]any, error) {
	if len(lg.Topics) == 0 {
		return "", nil, errors.New("anonymous log")
	}
	switch lg.Topics[0] {
	case createdTopic:
		return "TokenSaleCreated", map[string]any{"token": token}, nil
	case liquidityTopic:
		return "TokenLiqudityAdded", map[string]any{
			"token":  token,
			"poolId": [32]byte{1, 2, 3},
			"amount": big.NewInt(int64(lg.Index)),
		}, nil
	default:
		return "", nil, errors.New("unknown event")
	}
}

func receipt(topics ...common.Hash) *types.Receipt {
	r := &types.Receipt{}
	for i, topic := range topics {
		r.Logs = append(r.Logs, &types.Log{Topics: []common.Hash{topic}, Index: uint(i)})
	}
	return r
}

func TestFind(t *testing.T) {
	x := New(topicDecoder{})
	r := receipt(common.HexToHash("0xff"), createdTopic, liquidityTopic)

	ev, ok := x.Find(r, "TokenSaleCreated")
	require.True(t, ok)
	assert.Equal(t, uint(1), ev.Index)

	addr, ok := ev.Address("token")
	require.True(t, ok)
	assert.Equal(t, token, addr)

	_, ok = ev.BigInt("token")
	assert.False(t, ok)
}

func TestFind_Absent(t *testing.T) {
	x := New(topicDecoder{})

	_, ok := x.Find(receipt(createdTopic), "TokenLiqudityAdded")
	assert.False(t, ok)

	_, ok = x.Find(&types.Receipt{}, "TokenSaleCreated")
	assert.False(t, ok)

	_, ok = x.Find(nil, "TokenSaleCreated")
	assert.False(t, ok)
}

func TestFind_SkipsUndecodable(t *testing.T) {
	x := New(topicDecoder{})
	r := receipt(common.HexToHash("0xee"))
	r.Logs = append(r.Logs, &types.Log{Index: 1}, nil)

	_, ok := x.Find(r, "TokenSaleCreated")
	assert.False(t, ok)
}

func TestFindAll(t *testing.T) {
	x := New(topicDecoder{})
	r := receipt(liquidityTopic, createdTopic, liquidityTopic)

	events := x.FindAll(r, "TokenLiqudityAdded")
	require.Len(t, events, 2)
	assert.Equal(t, uint(0), events[0].Index)
	assert.Equal(t, uint(2), events[1].Index)

	pool, ok := events[1].Bytes32("poolId")
	require.True(t, ok)
	assert.Equal(t, [32]byte{1, 2, 3}, pool)

	amount, ok := events[1].BigInt("amount")
	require.True(t, ok)
	assert.Equal(t, int64(2), amount.Int64())

	assert.Empty(t, x.FindAll(r, "Missing"))
}
