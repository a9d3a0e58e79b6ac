package conversation

import (
	"strconv"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/amountConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
)

type validator func(text string) (value string, ok bool)

type stepDef struct {
	prompt   string
	reprompt string
	validate validator
	store    func(s model.Session, value string)
	// next is DefaultStep on the last step of a flow
	next model.Step
}

func nonEmpty(text string) (string, bool) {
	return text, text != ""
}

func number(text string) (string, bool) {
	return text, amountConverter.IsNumber(text)
}

func integer(text string) (string, bool) {
	return text, amountConverter.IsInteger(text)
}

// decimals accepts empty input or "-" as the default of 9.
func decimals(text string) (string, bool) {
	if text == "" || text == "-" || strings.EqualFold(text, "default") {
		return "9", true
	}
	if _, err := strconv.ParseUint(text, 10, 8); err != nil {
		return "", false
	}
	return text, true
}

var steps = map[model.Step]stepDef{
	model.ExpectingInfoToken: {
		prompt:   "🔍 Enter the token address:",
		reprompt: "❌ Token address cannot be empty. Please enter the token address:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Trade().Token = v },
	},

	model.ExpectingQuoteToken: {
		prompt:   "💰 Enter the token address to calculate:",
		reprompt: "❌ Token address cannot be empty. Please enter the token address:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Trade().Token = v },
		next:     model.ExpectingQuoteAmount,
	},
	model.ExpectingQuoteAmount: {
		prompt:   "Enter " + model.QuoteSymbol + " amount:",
		reprompt: "❌ Please enter a valid number for " + model.QuoteSymbol + " amount:",
		validate: number,
		store:    func(s model.Session, v string) { s.Trade().Amount = v },
	},

	model.ExpectingSaleName: {
		prompt:   "🚀 Enter token name:",
		reprompt: "❌ Token name cannot be empty. Please enter a name:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Sale().Name = v },
		next:     model.ExpectingSaleSymbol,
	},
	model.ExpectingSaleSymbol: {
		prompt:   "Enter token symbol:",
		reprompt: "❌ Token symbol cannot be empty. Please enter a symbol:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Sale().Symbol = v },
		next:     model.ExpectingSaleDecimals,
	},
	model.ExpectingSaleDecimals: {
		prompt:   "Enter token decimals (send - for the default 9):",
		reprompt: "❌ Please enter a whole number from 0 to 255 for decimals (or - for 9):",
		validate: decimals,
		store:    func(s model.Session, v string) { s.Sale().Decimals = v },
		next:     model.ExpectingSaleFundingGoal,
	},
	model.ExpectingSaleFundingGoal: {
		prompt:   "Enter funding goal (" + model.QuoteSymbol + "):",
		reprompt: "❌ Please enter a valid number for funding goal:",
		validate: number,
		store:    func(s model.Session, v string) { s.Sale().FundingGoal = v },
		next:     model.ExpectingSaleInitialSupply,
	},
	model.ExpectingSaleInitialSupply: {
		prompt:   "Enter initial supply:",
		reprompt: "❌ Please enter a valid number for initial supply:",
		validate: number,
		store:    func(s model.Session, v string) { s.Sale().InitialSupply = v },
		next:     model.ExpectingSaleFundingSupply,
	},
	model.ExpectingSaleFundingSupply: {
		prompt:   "Enter funding supply:",
		reprompt: "❌ Please enter a valid number for funding supply:",
		validate: number,
		store:    func(s model.Session, v string) { s.Sale().FundingSupply = v },
	},

	model.ExpectingBuyToken: {
		prompt:   "🛒 Enter the token address:",
		reprompt: "❌ Token address cannot be empty. Please enter the token address:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Trade().Token = v },
		next:     model.ExpectingBuyAmount,
	},
	model.ExpectingBuyAmount: {
		prompt:   "Enter " + model.QuoteSymbol + " amount to spend:",
		reprompt: "❌ Please enter a valid number for " + model.QuoteSymbol + " amount:",
		validate: number,
		store:    func(s model.Session, v string) { s.Trade().Amount = v },
	},

	model.ExpectingFeeBps: {
		prompt:   "⚙️ Enter the new fee in basis points (100 = 1%):",
		reprompt: "❌ Please enter a whole number of basis points:",
		validate: integer,
		store:    func(s model.Session, v string) { s.Fee().Bps = v },
	},

	model.ExpectingDebugToken: {
		prompt:   "🩺 Enter the token address to debug:",
		reprompt: "❌ Token address cannot be empty. Please enter the token address:",
		validate: nonEmpty,
		store:    func(s model.Session, v string) { s.Trade().Token = v },
		next:     model.ExpectingDebugAmount,
	},
	model.ExpectingDebugAmount: {
		prompt:   "Enter " + model.QuoteSymbol + " amount to test:",
		reprompt: "❌ Please enter a valid number for " + model.QuoteSymbol + " amount:",
		validate: number,
		store:    func(s model.Session, v string) { s.Trade().Amount = v },
	},
}
