package terminal

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/logrusorgru/aurora"
)

var mdLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Printer renders engine messages on a terminal.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
	au  aurora.Aurora
}

func NewPrinter(out io.Writer, colors bool) *Printer {
	return &Printer{out: out, au: aurora.NewAurora(colors)}
}

func (p *Printer) Notify(ctx context.Context, msg model.Message) error {
	text := msg.Text
	if msg.Markdown {
		text = stripMarkdown(text)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := fmt.Fprintln(p.out, p.style(text))
	return err
}

func (p *Printer) style(text string) string {
	switch {
	case strings.HasPrefix(text, "❌"), strings.HasPrefix(text, "⛔"):
		return p.au.Red(text).String()
	case strings.HasPrefix(text, "⚠️"):
		return p.au.Yellow(text).String()
	case strings.HasPrefix(text, "✅"), strings.HasPrefix(text, "🎉"):
		return p.au.Green(text).String()
	default:
		return text
	}
}

func (p *Printer) Line(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Title(text string) {
	p.Line("%s", p.au.Bold(p.au.Cyan(text)).String())
}

// stripMarkdown turns telegram markdown into plain text, links become "title: url".
func stripMarkdown(text string) string {
	text = mdLink.ReplaceAllString(text, "$1: $2")
	return strings.NewReplacer("*", "", "`", "").Replace(text)
}
