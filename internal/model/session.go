package model

import "time"

// Step is the field a session is waiting for next.
type Step int

const (
	DefaultStep Step = iota
	ExpectingInfoToken
	ExpectingQuoteToken
	ExpectingQuoteAmount
	ExpectingSaleName
	ExpectingSaleSymbol
	ExpectingSaleDecimals
	ExpectingSaleFundingGoal
	ExpectingSaleInitialSupply
	ExpectingSaleFundingSupply
	ExpectingBuyToken
	ExpectingBuyAmount
	ExpectingFeeBps
	ExpectingDebugToken
	ExpectingDebugAmount
)

type Flow int

const (
	NoFlow Flow = iota
	TokenInfoFlow
	QuoteFlow
	CreateSaleFlow
	BuyFlow
	SetFeeFlow
	DebugBuyFlow
)

func (f Flow) String() string {
	switch f {
	case TokenInfoFlow:
		return "token_info"
	case QuoteFlow:
		return "calculate_buy"
	case CreateSaleFlow:
		return "create_token"
	case BuyFlow:
		return "buy_tokens"
	case SetFeeFlow:
		return "set_fee"
	case DebugBuyFlow:
		return "debug_buy"
	default:
		return "none"
	}
}

func (s Step) Flow() Flow {
	switch s {
	case ExpectingInfoToken:
		return TokenInfoFlow
	case ExpectingQuoteToken, ExpectingQuoteAmount:
		return QuoteFlow
	case ExpectingSaleName, ExpectingSaleSymbol, ExpectingSaleDecimals,
		ExpectingSaleFundingGoal, ExpectingSaleInitialSupply, ExpectingSaleFundingSupply:
		return CreateSaleFlow
	case ExpectingBuyToken, ExpectingBuyAmount:
		return BuyFlow
	case ExpectingFeeBps:
		return SetFeeFlow
	case ExpectingDebugToken, ExpectingDebugAmount:
		return DebugBuyFlow
	default:
		return NoFlow
	}
}

// TradeForm is collected by the token info, quote, buy and debug-buy flows.
type TradeForm struct {
	Token  string
	Amount string
}

type SaleForm struct {
	Name          string
	Symbol        string
	Decimals      string
	FundingGoal   string
	InitialSupply string
	FundingSupply string
}

type FeeForm struct {
	Bps string
}

// Form is one of *TradeForm, *SaleForm or *FeeForm depending on the session flow.
type Form interface {
	form()
}

func (*TradeForm) form() {}
func (*SaleForm) form()  {}
func (*FeeForm) form()   {}

type Session struct {
	UserID    int64
	Step      Step
	Form      Form
	UpdatedAt time.Time
}

// NewSession starts a session at the given step with an empty form of the matching kind.
func NewSession(userID int64, step Step, now time.Time) Session {
	s := Session{UserID: userID, Step: step, UpdatedAt: now}
	switch step.Flow() {
	case CreateSaleFlow:
		s.Form = &SaleForm{}
	case SetFeeFlow:
		s.Form = &FeeForm{}
	default:
		s.Form = &TradeForm{}
	}
	return s
}

func (s Session) Trade() *TradeForm {
	f, ok := s.Form.(*TradeForm)
	if !ok {
		return &TradeForm{}
	}
	return f
}

func (s Session) Sale() *SaleForm {
	f, ok := s.Form.(*SaleForm)
	if !ok {
		return &SaleForm{}
	}
	return f
}

func (s Session) Fee() *FeeForm {
	f, ok := s.Form.(*FeeForm)
	if !ok {
		return &FeeForm{}
	}
	return f
}
