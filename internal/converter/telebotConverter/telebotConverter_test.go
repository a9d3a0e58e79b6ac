package telebotConverter

import (
	"testing"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestMainMenu(t *testing.T) {
	markup := MainMenu()

	require.Len(t, markup.InlineKeyboard, 5)
	for _, row := range markup.InlineKeyboard {
		assert.Len(t, row, 2)
	}
	assert.Equal(t, "📊 Contract Info", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "❓ Help", markup.InlineKeyboard[4][1].Text)
}

func TestButton(t *testing.T) {
	btn := Button(model.ActionBuy)
	assert.Equal(t, "buy_tokens", btn.Unique)
	assert.Equal(t, "🛒 Buy Tokens", btn.Text)
}

func TestSendOptions(t *testing.T) {
	opts := SendOptions(model.Message{Text: "x"})
	assert.Equal(t, []interface{}{tele.NoPreview}, opts)

	opts = SendOptions(model.Message{Text: "x", Markdown: true, Menu: true})
	require.Len(t, opts, 3)
	assert.Equal(t, tele.ModeMarkdown, opts[1])
	assert.IsType(t, &tele.ReplyMarkup{}, opts[2])
}

func TestWelcomeResponse(t *testing.T) {
	text, markup := WelcomeResponse(model.ChainStatus{
		BlockNumber: 1234,
		Contract:    common.HexToAddress("0x01"),
		Wallet:      common.HexToAddress("0x02"),
	})

	assert.Contains(t, text, "Current Block: 1234")
	assert.Contains(t, text, common.HexToAddress("0x01").Hex())
	assert.NotNil(t, markup)
}
