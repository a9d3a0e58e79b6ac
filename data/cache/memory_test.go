package cache

import (
	"context"
	"testing"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(&config.Config{Cache: config.Cache{ContractExpiration: time.Hour}})

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	contract := common.HexToAddress("0xc0")
	addrs := model.ContractAddresses{QuoteToken: common.HexToAddress("0xbb")}

	_, err := c.GetContractAddresses(ctx, contract)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.SetContractAddresses(ctx, contract, addrs))

	got, err := c.GetContractAddresses(ctx, contract)
	require.NoError(t, err)
	assert.Equal(t, addrs, got)

	_, err = c.GetContractAddresses(ctx, common.HexToAddress("0xc1"))
	require.ErrorIs(t, err, ErrNotFound)

	now = now.Add(time.Hour)
	_, err = c.GetContractAddresses(ctx, contract)
	require.ErrorIs(t, err, ErrNotFound)
}
