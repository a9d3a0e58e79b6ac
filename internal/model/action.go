package model

import (
	"context"
	"strings"
)

// Action is a main menu entry. The value doubles as the telegram button id and slash command.
type Action string

const (
	ActionContractInfo Action = "contract_info"
	ActionTokenInfo    Action = "token_info"
	ActionQuote        Action = "calculate_buy"
	ActionCreateSale   Action = "create_token"
	ActionBuy          Action = "buy_tokens"
	ActionClaimFees    Action = "claim_fees"
	ActionSetFee       Action = "set_fee"
	ActionWalletSetup  Action = "wallet_setup"
	ActionDebugBuy     Action = "debug_buy"
	ActionHelp         Action = "help"
)

var MenuActions = []Action{
	ActionContractInfo,
	ActionTokenInfo,
	ActionQuote,
	ActionCreateSale,
	ActionBuy,
	ActionClaimFees,
	ActionSetFee,
	ActionWalletSetup,
	ActionDebugBuy,
	ActionHelp,
}

// FirstStep returns the step a multi-step action starts at.
func (a Action) FirstStep() (Step, bool) {
	switch a {
	case ActionTokenInfo:
		return ExpectingInfoToken, true
	case ActionQuote:
		return ExpectingQuoteToken, true
	case ActionCreateSale:
		return ExpectingSaleName, true
	case ActionBuy:
		return ExpectingBuyToken, true
	case ActionSetFee:
		return ExpectingFeeBps, true
	case ActionDebugBuy:
		return ExpectingDebugToken, true
	default:
		return DefaultStep, false
	}
}

// ParseAction accepts "/buy_tokens" style commands.
func ParseAction(text string) (Action, bool) {
	cmd, ok := strings.CutPrefix(strings.TrimSpace(text), "/")
	if !ok {
		return "", false
	}
	// telegram appends @botname in group chats
	cmd, _, _ = strings.Cut(cmd, "@")
	for _, a := range MenuActions {
		if string(a) == cmd {
			return a, true
		}
	}
	return "", false
}

// Message is a front-end neutral reply.
type Message struct {
	Text     string
	Markdown bool
	// Menu asks the front-end to show the main menu with the message.
	Menu bool
}

// Notifier delivers progress and results back to whoever started an action.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
