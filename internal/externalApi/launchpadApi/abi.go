package launchpadApi

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	EventTokenSaleCreated = "TokenSaleCreated"
	// spelled as deployed
	EventLiquidityAdded = "TokenLiqudityAdded"
)

// launchpadABI covers the MemeLaunchpad surface the bot uses.
const launchpadABI = `[
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"feePercent","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"fee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"FEE_DENOMINATOR","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"wsolToken","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"bondingCurve","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"erc20ForSplFactory","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getPayer","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"tokens","stateMutability":"view",
		"inputs":[{"name":"","type":"address"}],
		"outputs":[
			{"name":"fundingGoal","type":"uint256"},
			{"name":"collateralAmount","type":"uint256"},
			{"name":"initialSupply","type":"uint256"},
			{"name":"fundingSupply","type":"uint256"},
			{"name":"state","type":"uint8"}
		]},
	{"type":"function","name":"getNeonAddress","stateMutability":"view","inputs":[{"name":"_address","type":"address"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"calculateBuyAmount","stateMutability":"view",
		"inputs":[{"name":"tokenAddress","type":"address"},{"name":"amount","type":"uint256"}],
		"outputs":[
			{"name":"receiveAmount","type":"uint256"},
			{"name":"availableSupply","type":"uint256"},
			{"name":"totalSupply","type":"uint256"},
			{"name":"contributionWithoutFee","type":"uint256"}
		]},
	{"type":"function","name":"createTokenSale","stateMutability":"nonpayable",
		"inputs":[
			{"name":"name","type":"string"},
			{"name":"symbol","type":"string"},
			{"name":"decimals","type":"uint8"},
			{"name":"fundingGoal","type":"uint256"},
			{"name":"initialSupply","type":"uint256"},
			{"name":"fundingSupply","type":"uint256"}
		],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"buy","stateMutability":"nonpayable",
		"inputs":[{"name":"tokenAddress","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"setFeePercent","stateMutability":"nonpayable","inputs":[{"name":"_feePercent","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claimTokenSaleFee","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"event","name":"TokenSaleCreated","anonymous":false,
		"inputs":[
			{"name":"token","type":"address","indexed":true},
			{"name":"creator","type":"address","indexed":true}
		]},
	{"type":"event","name":"TokenLiqudityAdded","anonymous":false,
		"inputs":[
			{"name":"token","type":"address","indexed":true},
			{"name":"poolId","type":"bytes32","indexed":false},
			{"name":"amount","type":"uint256","indexed":false}
		]}
]`

const erc20ABI = `[
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

// loadLaunchpadABI reads a compiled artifact or a bare ABI array from path, or falls back to the built-in ABI.
func loadLaunchpadABI(path string) (abi.ABI, error) {
	if path == "" {
		return abi.JSON(strings.NewReader(launchpadABI))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("read abi file: %w", err)
	}

	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(content, &artifact); err == nil && len(artifact.ABI) > 0 {
		content = artifact.ABI
	}

	parsed, err := abi.JSON(strings.NewReader(string(content)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi %s: %w", path, err)
	}

	return parsed, nil
}
