package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type sent struct {
	what interface{}
	opts []interface{}
}

// fakeContext implements the handful of tele.Context methods the controller uses.
type fakeContext struct {
	tele.Context
	sender    *tele.User
	text      string
	store     map[string]interface{}
	sent      []sent
	failFirst bool
	responded bool
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Chat() *tele.Chat   { return &tele.Chat{ID: 99} }
func (f *fakeContext) Text() string       { return f.text }
func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.responded = true
	return nil
}
func (f *fakeContext) Get(key string) interface{} { return f.store[key] }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, sent{what: what, opts: opts})
	if f.failFirst && len(f.sent) == 1 {
		return errors.New("Bad Request: can't parse entities")
	}
	return nil
}

type call struct {
	userID int64
	action model.Action
	text   string
}

type fakeEngine struct {
	calls []call
}

func (f *fakeEngine) Select(ctx context.Context, userID int64, action model.Action, n model.Notifier) error {
	f.calls = append(f.calls, call{userID: userID, action: action})
	return n.Notify(ctx, model.Message{Text: "selected " + string(action)})
}

func (f *fakeEngine) Handle(ctx context.Context, userID int64, text string, n model.Notifier) error {
	f.calls = append(f.calls, call{userID: userID, text: text})
	return n.Notify(ctx, model.Message{Text: "handled"})
}

type fakeStatus struct {
	err error
}

func (f fakeStatus) Status(ctx context.Context) (model.ChainStatus, error) {
	if f.err != nil {
		return model.ChainStatus{}, f.err
	}
	return model.ChainStatus{BlockNumber: 77, Contract: common.HexToAddress("0x01"), Wallet: common.HexToAddress("0x02")}, nil
}

func newContext(text string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: 5}, text: text, store: map[string]interface{}{"rqID": "rq-1"}}
}

func TestController_Start(t *testing.T) {
	ctrl := NewController(&fakeEngine{}, fakeStatus{})
	c := newContext("/start")

	require.NoError(t, ctrl.Start(c))
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0].what, "Current Block: 77")
	assert.Contains(t, c.sent[0].opts, tele.ModeMarkdown)
}

func TestController_StartStatusError(t *testing.T) {
	ctrl := NewController(&fakeEngine{}, fakeStatus{err: errors.New("dial tcp: refused")})
	c := newContext("/start")

	require.NoError(t, ctrl.Start(c))
	assert.Contains(t, c.sent[0].what, "dial tcp: refused")
}

func TestController_MenuAnswersCallback(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewController(engine, fakeStatus{})
	c := newContext("")

	require.NoError(t, ctrl.Menu(model.ActionBuy)(c))
	assert.True(t, c.responded)
	assert.Equal(t, []call{{userID: 5, action: model.ActionBuy}}, engine.calls)
}

func TestController_TextAndCommands(t *testing.T) {
	engine := &fakeEngine{}
	ctrl := NewController(engine, fakeStatus{})

	require.NoError(t, ctrl.Text(newContext("0xabc")))
	require.NoError(t, ctrl.Help(newContext("/help")))
	require.NoError(t, ctrl.Command(model.ActionSetFee)(newContext("/set_fee")))

	assert.Equal(t, []call{
		{userID: 5, text: "0xabc"},
		{userID: 5, action: model.ActionHelp},
		{userID: 5, action: model.ActionSetFee},
	}, engine.calls)
}

func TestUserID_FallsBackToChat(t *testing.T) {
	c := newContext("")
	c.sender = nil
	assert.Equal(t, int64(99), userID(c))
}

func TestNotifier_MarkdownFallback(t *testing.T) {
	c := newContext("")
	c.failFirst = true

	err := NewNotifier(c).Notify(context.Background(), model.Message{Text: "*bad_md", Markdown: true})

	require.NoError(t, err)
	require.Len(t, c.sent, 2)
	assert.Contains(t, c.sent[0].opts, tele.ModeMarkdown)
	assert.NotContains(t, c.sent[1].opts, tele.ModeMarkdown)
}

func TestNotifier_PlainErrorIsReturned(t *testing.T) {
	c := newContext("")
	c.failFirst = true

	err := NewNotifier(c).Notify(context.Background(), model.Message{Text: "plain"})

	require.Error(t, err)
	assert.Len(t, c.sent, 1)
}
