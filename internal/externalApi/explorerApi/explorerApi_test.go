package explorerApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *ExplorerApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Explorer: config.Explorer{ApiURL: srv.URL, Timeout: time.Second}}
	return New(cfg)
}

func TestGetTransaction_RawRevertReason(t *testing.T) {
	hash := common.HexToHash("0x01")
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/transactions/"+hash.Hex(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hash":"0x01","status":"error","result":"Reverted","revert_reason":{"raw":"0x340dabef"}}`))
	})

	tx, err := api.GetTransaction(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, "error", tx.Status)
	assert.Equal(t, "0x340dabef", tx.RevertData)
	assert.Empty(t, tx.RevertMessage)
}

func TestGetTransaction_PlainRevertReason(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hash":"0x02","status":"error","revert_reason":"out of gas"}`))
	})

	tx, err := api.GetTransaction(context.Background(), common.HexToHash("0x02"))
	require.NoError(t, err)
	assert.Equal(t, "out of gas", tx.RevertMessage)
	assert.Empty(t, tx.RevertData)
}

func TestGetTransaction_NoRevertReason(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hash":"0x03","status":"ok","revert_reason":null}`))
	})

	tx, err := api.GetTransaction(context.Background(), common.HexToHash("0x03"))
	require.NoError(t, err)
	assert.Equal(t, "ok", tx.Status)
	assert.Empty(t, tx.RevertData)
	assert.Empty(t, tx.RevertMessage)
}

func TestGetTransaction_NotFound(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := api.GetTransaction(context.Background(), common.HexToHash("0x04"))
	require.ErrorIs(t, err, externalApi.ErrNotFound)
}

func TestGetTransaction_ServerError(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.GetTransaction(context.Background(), common.HexToHash("0x05"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, externalApi.ErrNotFound)
}
