package telebotConverter

import (
	"fmt"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	tele "gopkg.in/telebot.v4"
)

var labels = map[model.Action]string{
	model.ActionContractInfo: "📊 Contract Info",
	model.ActionTokenInfo:    "🔍 Token Info",
	model.ActionQuote:        "💰 Calculate Buy",
	model.ActionCreateSale:   "🚀 Create Token Sale",
	model.ActionBuy:          "🛒 Buy Tokens",
	model.ActionClaimFees:    "💎 Claim Fees",
	model.ActionSetFee:       "⚙️ Set Fee %",
	model.ActionWalletSetup:  "🔧 Wallet Setup",
	model.ActionDebugBuy:     "🩺 Debug Buy",
	model.ActionHelp:         "❓ Help",
}

func Label(action model.Action) string {
	if l, ok := labels[action]; ok {
		return l
	}
	return string(action)
}

// Button is the inline button of a menu action. Its Unique doubles as the route endpoint.
func Button(action model.Action) tele.Btn {
	return tele.Btn{Unique: string(action), Text: Label(action), Data: string(action)}
}

// MainMenu lays the menu actions out two per row.
func MainMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	rows := make([]tele.Row, 0, (len(model.MenuActions)+1)/2)
	for i := 0; i < len(model.MenuActions); i += 2 {
		btns := []tele.Btn{markup.Data(Label(model.MenuActions[i]), string(model.MenuActions[i]))}
		if i+1 < len(model.MenuActions) {
			btns = append(btns, markup.Data(Label(model.MenuActions[i+1]), string(model.MenuActions[i+1])))
		}
		rows = append(rows, markup.Row(btns...))
	}
	markup.Inline(rows...)

	return markup
}

// SendOptions turns a front-end neutral message into telebot send options.
func SendOptions(msg model.Message) []interface{} {
	opts := []interface{}{tele.NoPreview}
	if msg.Markdown {
		opts = append(opts, tele.ModeMarkdown)
	}
	if msg.Menu {
		opts = append(opts, MainMenu())
	}
	return opts
}

func WelcomeResponse(status model.ChainStatus) (text string, markup *tele.ReplyMarkup) {
	var sb strings.Builder

	sb.WriteString("🚀 *Meme Launchpad Bot*\n\n")
	sb.WriteString("✅ Connected to *Neon Devnet*\n")
	sb.WriteString(fmt.Sprintf("📍 Contract: `%s`\n", status.Contract.Hex()))
	sb.WriteString(fmt.Sprintf("👤 Wallet: `%s`\n", status.Wallet.Hex()))
	sb.WriteString(fmt.Sprintf("⛓️ Current Block: %d\n\n", status.BlockNumber))
	sb.WriteString("Choose an action below:")

	return sb.String(), MainMenu()
}
