package cli

import (
	"fmt"
	"io"
)

// TerminalNotifier renders controller notifications as plain lines on the
// terminal. It satisfies controllers.Notifier.
type TerminalNotifier struct {
	out io.Writer
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (n *TerminalNotifier) Info(msg string) {
	fmt.Fprintf(n.out, "✔ %s\n", msg)
}

func (n *TerminalNotifier) Error(msg string) {
	fmt.Fprintf(n.out, "✘ %s\n", msg)
}

func (n *TerminalNotifier) Celebrate(msg string) {
	fmt.Fprintf(n.out, "★★★ %s ★★★\n", msg)
}
