package pomodoro

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Notifier 桌面通知能力；RequestPermission 返回是否获得授权
type Notifier interface {
	RequestPermission() bool
	Notify(title, body string) error
}

type Chime interface {
	Play()
}

// TerminalNotifier 把通知写到终端，仅当输出连接到 TTY 时授予权限
type TerminalNotifier struct {
	Out *os.File
}

func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{Out: os.Stderr}
}

func (n *TerminalNotifier) RequestPermission() bool {
	if n.Out == nil {
		return false
	}
	fd := n.Out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (n *TerminalNotifier) Notify(title, body string) error {
	if n.Out == nil {
		return fmt.Errorf("notify: no output")
	}
	// OSC 9 通知，不支持的终端会忽略
	_, err := fmt.Fprintf(n.Out, "\x1b]9;%s: %s\x07\n%s %s\n", title, body, title, body)
	return err
}

// BellChime 输出终端响铃字符
type BellChime struct {
	Out io.Writer
}

func (c BellChime) Play() {
	if c.Out == nil {
		return
	}
	_, _ = io.WriteString(c.Out, "\a")
}
