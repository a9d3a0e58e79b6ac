package launchpadService

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/data/cache"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi/launchpadApi"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model/explorerModel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	contractAddr = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	walletAddr   = common.HexToAddress("0x00000000000000000000000000000000000000d0")
	tokenAddr    = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	wsolAddr     = common.HexToAddress("0x00000000000000000000000000000000000000bb")

	createdTopic   = common.HexToHash("0xc1")
	liquidityTopic = common.HexToHash("0xc2")
)

type rpcRevert struct{ data string }

func (e rpcRevert) Error() string  { return "execution reverted" }
func (e rpcRevert) ErrorData() any { return e.data }

type fakeChain struct {
	mu sync.Mutex

	owner     common.Address
	sale      model.TokenSale
	saleErr   error
	quote     model.BuyQuote
	quoteErr  error
	gasErr    error
	native    *big.Int
	balance   *big.Int
	allowance *big.Int

	// logs attached to the receipt of each send method
	logs map[string][]*types.Log
	// send methods whose transaction reverts
	reverts map[string]bool

	calls    []string
	nonce    uint64
	txMethod map[common.Hash]string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		owner:     walletAddr,
		sale:      model.TokenSale{State: model.SaleFunding, FundingGoal: big.NewInt(100_000_000_000), CollateralAmount: big.NewInt(0), InitialSupply: big.NewInt(1), FundingSupply: big.NewInt(1)},
		quote:     model.BuyQuote{ReceiveAmount: big.NewInt(40), AvailableSupply: big.NewInt(700), TotalSupply: big.NewInt(1000), ContributionWithoutFee: big.NewInt(490)},
		native:    big.NewInt(1_000_000_000_000_000_000),
		balance:   big.NewInt(1000),
		allowance: big.NewInt(1000),
		logs:      map[string][]*types.Log{},
		reverts:   map[string]bool{},
		txMethod:  map[common.Hash]string{},
	}
}

func (f *fakeChain) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeChain) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeChain) send(method string) (*types.Transaction, error) {
	f.record(method)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nonce++
	tx := types.NewTx(&types.LegacyTx{Nonce: f.nonce})
	f.txMethod[tx.Hash()] = method
	return tx, nil
}

func (f *fakeChain) Address() common.Address { return contractAddr }
func (f *fakeChain) Wallet() common.Address  { return walletAddr }

func (f *fakeChain) Owner(ctx context.Context) (common.Address, error) {
	f.record("Owner")
	return f.owner, nil
}

func (f *fakeChain) FeePercent(ctx context.Context) (*big.Int, error) { return big.NewInt(100), nil }
func (f *fakeChain) AccumulatedFee(ctx context.Context) (*big.Int, error) {
	return big.NewInt(2_500_000_000), nil
}
func (f *fakeChain) FeeDenominator(ctx context.Context) (*big.Int, error) { return big.NewInt(10000), nil }
func (f *fakeChain) Payer(ctx context.Context) ([32]byte, error)          { return [32]byte{}, nil }

func (f *fakeChain) ContractAddresses(ctx context.Context) (model.ContractAddresses, error) {
	f.record("ContractAddresses")
	return model.ContractAddresses{QuoteToken: wsolAddr}, nil
}

func (f *fakeChain) TokenSale(ctx context.Context, token common.Address) (model.TokenSale, error) {
	f.record("TokenSale")
	return f.sale, f.saleErr
}

func (f *fakeChain) NeonAddress(ctx context.Context, token common.Address) ([32]byte, error) {
	return [32]byte{}, nil
}

func (f *fakeChain) CalculateBuy(ctx context.Context, token common.Address, amount *big.Int) (model.BuyQuote, error) {
	f.record("CalculateBuy")
	return f.quote, f.quoteErr
}

func (f *fakeChain) EstimateBuyGas(ctx context.Context, token common.Address, amount *big.Int) (uint64, error) {
	f.record("EstimateBuyGas")
	if f.gasErr != nil {
		return 0, f.gasErr
	}
	return 210000, nil
}

func (f *fakeChain) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	f.record("NativeBalance")
	return f.native, nil
}

func (f *fakeChain) BlockNumber(ctx context.Context) (uint64, error) { return 42, nil }

func (f *fakeChain) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	f.record("BalanceOf")
	return f.balance, nil
}

func (f *fakeChain) TokenSymbol(ctx context.Context, token common.Address) (string, error) {
	return "WSOL", nil
}

func (f *fakeChain) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	f.record("Allowance")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allowance, nil
}

// Approve takes effect immediately unless the approval is set up to revert.
func (f *fakeChain) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	tx, err := f.send("Approve")
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.reverts["Approve"] {
		f.allowance = new(big.Int).Set(amount)
	}
	return tx, err
}

func (f *fakeChain) CreateTokenSale(ctx context.Context, params model.SaleParams) (*types.Transaction, error) {
	return f.send("CreateTokenSale")
}

func (f *fakeChain) Buy(ctx context.Context, token common.Address, amount *big.Int) (*types.Transaction, error) {
	return f.send("Buy")
}

func (f *fakeChain) SetFeePercent(ctx context.Context, bps *big.Int) (*types.Transaction, error) {
	return f.send("SetFeePercent")
}

func (f *fakeChain) ClaimTokenSaleFee(ctx context.Context) (*types.Transaction, error) {
	return f.send("ClaimTokenSaleFee")
}

func (f *fakeChain) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	method := f.txMethod[tx.Hash()]
	status := types.ReceiptStatusSuccessful
	if f.reverts[method] {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{Status: status, TxHash: tx.Hash(), Logs: f.logs[method]}, nil
}

func (f *fakeChain) DecodeLog(lg types.Log) (string, map[string]any, error) {
	switch lg.Topics[0] {
	case createdTopic:
		return launchpadApi.EventTokenSaleCreated, map[string]any{"token": tokenAddr}, nil
	case liquidityTopic:
		return launchpadApi.EventLiquidityAdded, map[string]any{"token": tokenAddr, "poolId": [32]byte{}}, nil
	default:
		return "", nil, errors.New("unknown event")
	}
}

type fakeExplorer struct {
	tx    explorerModel.Transaction
	calls int
}

func (e *fakeExplorer) GetTransaction(ctx context.Context, hash common.Hash) (explorerModel.Transaction, error) {
	e.calls++
	return e.tx, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []model.Message
}

func (r *recordingNotifier) Notify(ctx context.Context, msg model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingNotifier) last() model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return model.Message{}
	}
	return r.msgs[len(r.msgs)-1]
}

func (r *recordingNotifier) all() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	texts := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		texts = append(texts, m.Text)
	}
	return strings.Join(texts, "\n---\n")
}

func testConfig() *config.Config {
	return &config.Config{
		Explorer: config.Explorer{URL: "https://explorer.test"},
		Cache:    config.Cache{ContractExpiration: time.Hour},
	}
}

func newTestService(chain *fakeChain, explorer Explorer) (*LaunchpadService, *cache.MemoryCache) {
	cfg := testConfig()
	c := cache.NewMemoryCache(cfg)
	return New(cfg, chain, c, explorer), c
}
