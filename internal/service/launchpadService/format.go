package launchpadService

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/amountConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func (s *LaunchpadService) txLink(hash common.Hash) string {
	h := hash.Hex()
	return fmt.Sprintf("[%s...%s](%s/tx/%s)", h[:10], h[len(h)-6:], strings.TrimRight(s.cfg.Explorer.URL, "/"), h)
}

func (s *LaunchpadService) addressLink(title string, addr common.Address) string {
	return fmt.Sprintf("[%s](%s/address/%s)", title, strings.TrimRight(s.cfg.Explorer.URL, "/"), addr.Hex())
}

// feePercentText renders basis points against the contract denominator, 100/10000 is "1.00%".
func feePercentText(feePercent, denominator *big.Int) string {
	if feePercent == nil || denominator == nil || denominator.Sign() == 0 {
		return "n/a"
	}
	pct := decimal.NewFromBigInt(feePercent, 0).
		Div(decimal.NewFromBigInt(denominator, 0)).
		Mul(decimal.NewFromInt(100))
	return pct.StringFixed(2) + "%"
}

func allowanceText(allowance *big.Int) string {
	if allowance != nil && allowance.Cmp(abi.MaxUint256) == 0 {
		return "unlimited"
	}
	return amountConverter.Quote.Format(allowance) + " " + model.QuoteSymbol
}
