package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	QuoteSymbol   = "WSOL"
	QuoteDecimals = 9
	NativeSymbol  = "NEON"
)

type SaleState uint8

const (
	SaleNotCreated SaleState = iota
	SaleFunding
	SaleTrading
)

func (s SaleState) String() string {
	switch s {
	case SaleNotCreated:
		return "NOT_CREATED"
	case SaleFunding:
		return "FUNDING"
	case SaleTrading:
		return "TRADING"
	default:
		return "UNKNOWN"
	}
}

type TokenSale struct {
	FundingGoal      *big.Int
	CollateralAmount *big.Int
	InitialSupply    *big.Int
	FundingSupply    *big.Int
	State            SaleState
}

type BuyQuote struct {
	ReceiveAmount          *big.Int
	AvailableSupply        *big.Int
	TotalSupply            *big.Int
	ContributionWithoutFee *big.Int
}

// ContractAddresses are launchpad settings that never change after deployment.
type ContractAddresses struct {
	QuoteToken   common.Address `json:"quoteToken"`
	BondingCurve common.Address `json:"bondingCurve"`
	Factory      common.Address `json:"factory"`
}

type SaleParams struct {
	Name          string
	Symbol        string
	Decimals      uint8
	FundingGoal   *big.Int
	InitialSupply *big.Int
	FundingSupply *big.Int
}

type ChainStatus struct {
	BlockNumber uint64
	Contract    common.Address
	Wallet      common.Address
}
