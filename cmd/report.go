package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type reportLevel int

const (
	reportOK reportLevel = iota
	reportWarn
	reportFail
)

func (l reportLevel) String() string {
	switch l {
	case reportOK:
		return "OK"
	case reportWarn:
		return "WARN"
	case reportFail:
		return "FAIL"
	default:
		return "?"
	}
}

type reportPrinter struct {
	out io.Writer
	mu  sync.Mutex

	levelStyles map[reportLevel]lipgloss.Style
	pathStyle   lipgloss.Style
}

func newReportPrinter(out io.Writer) *reportPrinter {
	p := &reportPrinter{out: out}

	colorEnabled := false
	if f, ok := out.(*os.File); ok {
		colorEnabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !colorEnabled {
		return p
	}

	p.levelStyles = map[reportLevel]lipgloss.Style{
		reportOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")), // green
		reportWarn: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")), // yellow
		reportFail: lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")), // red
	}
	p.pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")) // grey

	return p
}

func (p *reportPrinter) Print(level reportLevel, path, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	levelToken := fmt.Sprintf("%-4s", level.String())
	pathToken := path
	if p.levelStyles != nil {
		if style, ok := p.levelStyles[level]; ok {
			levelToken = style.Render(levelToken)
		}
		pathToken = p.pathStyle.Render(path)
	}

	fmt.Fprintf(p.out, "%s %s: %s\n", levelToken, pathToken, message)
}
