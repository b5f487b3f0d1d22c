package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Moto club palette for terminal output
var (
	clrDim    = color.New(color.FgHiBlack)
	clrSubtle = color.New(color.FgWhite)

	clrPrimary = color.New(color.FgYellow, color.Bold)
	clrAccent  = color.New(color.FgHiYellow, color.Bold)
	clrRoute   = color.New(color.FgCyan)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)

	badgePrimary = color.New(color.BgRed, color.FgHiYellow, color.Bold)
)

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

var (
	outMu   sync.Mutex
	out     io.Writer = os.Stdout
	debugOn bool
)

// SetOutput redirects all log output. Passing nil restores stdout.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetLevel enables debug lines when level is "debug".
func SetLevel(level string) {
	outMu.Lock()
	defer outMu.Unlock()
	debugOn = strings.EqualFold(level, "debug")
}

// AddFileSink tees log output into a size-rotated file. ANSI codes are
// stripped from the file copy. Closing the sink detaches it from the log
// output before closing the file.
func AddFileSink(path string, maxSizeMB, maxBackups int) io.Closer {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	outMu.Lock()
	sink := &fileSink{lj: lj, prev: out}
	out = io.MultiWriter(out, &stripWriter{w: lj})
	outMu.Unlock()
	return sink
}

type fileSink struct {
	lj   *lumberjack.Logger
	prev io.Writer
	once sync.Once
}

func (f *fileSink) Close() error {
	var err error
	f.once.Do(func() {
		outMu.Lock()
		out = f.prev
		outMu.Unlock()
		err = f.lj.Close()
	})
	return err
}

func emit(format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, a...)
}

// Print writes preformatted text, such as a rendered table, to the log output.
func Print(text string) {
	emit("%s", text)
}

func timestamp() string {
	return clrDim.Sprint(time.Now().Format("15:04:05"))
}

// PrintBanner displays the service header
func PrintBanner(version, subtitle string) {
	badge := badgePrimary.Sprint(" ◆ MOTO CLUB ")
	ver := clrDim.Sprint(version)
	width := 60

	emit("\n%s\n", clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, width)+boxTopRight))

	title := "  " + badge + " " + ver
	emit("%s%s%s\n", clrDim.Sprint(boxVertical), PadRight(title, width), clrDim.Sprint(boxVertical))

	sub := "  " + clrSubtle.Sprint(subtitle)
	emit("%s%s%s\n", clrDim.Sprint(boxVertical), PadRight(sub, width), clrDim.Sprint(boxVertical))

	emit("%s\n\n", clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, width)+boxBottomRight))
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	var icon string
	var styledMsg string

	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warning", "warn":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	case "debug":
		outMu.Lock()
		on := debugOn
		outMu.Unlock()
		if !on {
			return
		}
		icon = clrDim.Sprint("·")
		styledMsg = clrDim.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrSubtle.Sprint(message)
	}

	emit("%s  %s  %s\n", timestamp(), icon, styledMsg)
}

// LogSection creates a section header
func LogSection(title string) {
	pad := 50 - len(title)
	if pad < 2 {
		pad = 2
	}
	emit("\n%s %s %s\n", clrDim.Sprint("──"), clrAccent.Sprint(title), clrDim.Sprint(strings.Repeat("─", pad)))
}

// LogGroupItem logs a label: value line inside a section
func LogGroupItem(label, value string) {
	emit("%s  %s %s\n", clrDim.Sprint(boxVertical), clrDim.Sprint(label+":"), clrAccent.Sprint(value))
}

// LogRequest displays one served HTTP request
func LogRequest(method, path string, status int, elapsed time.Duration, requestID string) {
	statusClr := clrSuccess
	switch {
	case status >= 500:
		statusClr = clrError
	case status >= 400:
		statusClr = clrWarning
	}

	emit("%s  %s  %s %s  %s  %s  %s\n",
		timestamp(),
		clrPrimary.Sprint("→"),
		clrDim.Sprintf("%-6s", method),
		clrRoute.Sprintf("%-28s", path),
		statusClr.Sprintf("%d", status),
		clrSubtle.Sprintf("%-8s", elapsed.Round(time.Microsecond)),
		clrDim.Sprint(shortID(requestID)))
}

// LogApply records a palette being applied by one of the theme stores
func LogApply(store, profile, name string) {
	emit("%s  %s  %s %s %s\n",
		timestamp(),
		clrPrimary.Sprint("◆"),
		clrDim.Sprintf("%-8s", store),
		clrAccent.Sprint(profile),
		clrDim.Sprint("("+name+")"))
}

// LogGracefulShutdown announces the start of shutdown
func LogGracefulShutdown() {
	LogStatus("warning", "Shutdown signal received, draining requests...")
}

// PrintFooter displays a dimmed footer message
func PrintFooter(message string) {
	emit("\n  %s %s\n", clrDim.Sprint("▸"), clrDim.Sprint(message))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
