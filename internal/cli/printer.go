package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/yt-search/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))             // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // cyan
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))            // purple
	streamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))           // grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // blue
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// Symbols used in front of printed lines
const (
	SymbolPass    = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "ℹ"
	SymbolDot     = "·"
)

// Printer writes styled lines. It is safe for concurrent use since
// session events and download progress arrive from worker goroutines.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	json   bool
}

// NewPrinter creates a printer writing results to out and problems to errOut
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// SetJSON switches results to one JSON object per line
func (p *Printer) SetJSON(enabled bool) {
	p.mu.Lock()
	p.json = enabled
	p.mu.Unlock()
}

type resultJSON struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	ViewCount  int64  `json:"view_count"`
	UploadDate string `json:"upload_date,omitempty"`
	URL        string `json:"url"`
}

// Result prints the n-th result
func (p *Printer) Result(n int, r model.SearchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		data, err := sonic.Marshal(resultJSON{
			ID:         r.ID,
			Title:      r.Title,
			Uploader:   r.Uploader,
			ViewCount:  r.ViewCount,
			UploadDate: r.UploadDate,
			URL:        r.WatchURL(),
		})
		if err == nil {
			fmt.Fprintln(p.out, string(data))
		}
		return
	}

	details := []string{r.Uploader, r.FormattedViews() + " views"}
	if date := r.FormattedDate(); date != "" {
		details = append(details, date)
	}
	fmt.Fprintf(p.out, "%s %s\n", headerStyle.Render(fmt.Sprintf("%3d.", n)), titleStyle.Render(r.GetDisplayTitle()))
	fmt.Fprintf(p.out, "     %s\n", detailStyle.Render(strings.Join(details, " "+SymbolDot+" ")))
	fmt.Fprintf(p.out, "     %s\n", streamStyle.Render(r.WatchURL()))
}

// Success prints a success line
func (p *Printer) Success(format string, args ...any) {
	p.line(false, successStyle, SymbolPass, format, args...)
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...any) {
	p.line(false, infoStyle, SymbolInfo, format, args...)
}

// Warning prints a warning line to the error output
func (p *Printer) Warning(format string, args ...any) {
	p.line(true, warningStyle, SymbolWarning, format, args...)
}

// Error prints an error line to the error output
func (p *Printer) Error(format string, args ...any) {
	p.line(true, errorStyle, SymbolFail, format, args...)
}

func (p *Printer) line(problem bool, style lipgloss.Style, symbol, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.out
	if problem {
		out = p.errOut
	} else if p.json {
		// stdout carries results only
		return
	}
	fmt.Fprintln(out, style.Render(symbol+" "+fmt.Sprintf(format, args...)))
}
