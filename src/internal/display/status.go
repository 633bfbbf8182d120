// Package display provides terminal status output for dupe.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// StatusType represents different types of status messages.
type StatusType int

// StatusType values enumerate the kinds of status messages that can be rendered.
const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
	StatusProgress
)

// StatusMessage represents a status message with formatting.
type StatusMessage struct {
	Type      StatusType
	Message   string
	Timestamp time.Time
	Details   string
}

// StatusRenderer renders status messages to a writer.
type StatusRenderer struct {
	out          io.Writer
	colorEnabled bool
	showTime     bool
	quiet        bool
}

// NewStatusRenderer creates a new status renderer writing to out.
func NewStatusRenderer(out io.Writer, colorEnabled, showTime bool) *StatusRenderer {
	return &StatusRenderer{
		out:          out,
		colorEnabled: colorEnabled,
		showTime:     showTime,
	}
}

// SetQuiet suppresses everything except errors.
func (sr *StatusRenderer) SetQuiet(quiet bool) {
	sr.quiet = quiet
}

// RenderStatus renders a status message with appropriate formatting.
func (sr *StatusRenderer) RenderStatus(status *StatusMessage) string {
	var parts []string

	if sr.showTime {
		timestamp := status.Timestamp.Format("15:04:05")
		parts = append(parts, sr.formatMessage(fmt.Sprintf("[%s]", timestamp), color.FgWhite))
	}

	message := fmt.Sprintf("%s %s", statusIcon(status.Type), status.Message)
	parts = append(parts, sr.formatMessage(message, statusColor(status.Type)))

	result := strings.Join(parts, " ")

	if status.Details != "" {
		result += "\n" + sr.formatDetails(status.Details)
	}

	return result
}

// PrintInfo prints an info message.
func (sr *StatusRenderer) PrintInfo(message string, details ...string) {
	sr.print(StatusInfo, message, details)
}

// PrintSuccess prints a success message.
func (sr *StatusRenderer) PrintSuccess(message string, details ...string) {
	sr.print(StatusSuccess, message, details)
}

// PrintWarning prints a warning message.
func (sr *StatusRenderer) PrintWarning(message string, details ...string) {
	sr.print(StatusWarning, message, details)
}

// PrintError prints an error message. Errors are printed even when quiet.
func (sr *StatusRenderer) PrintError(message string, details ...string) {
	sr.print(StatusError, message, details)
}

// PrintProgress prints a progress message.
func (sr *StatusRenderer) PrintProgress(message string, details ...string) {
	sr.print(StatusProgress, message, details)
}

func (sr *StatusRenderer) print(statusType StatusType, message string, details []string) {
	if sr.quiet && statusType != StatusError {
		return
	}

	status := &StatusMessage{
		Type:      statusType,
		Message:   message,
		Timestamp: time.Now(),
		Details:   strings.Join(details, "\n"),
	}

	_, _ = fmt.Fprintln(sr.out, sr.RenderStatus(status))
}

func statusIcon(statusType StatusType) string {
	switch statusType {
	case StatusInfo:
		return "ℹ️"
	case StatusSuccess:
		return "✅"
	case StatusWarning:
		return "⚠️"
	case StatusError:
		return "❌"
	case StatusProgress:
		return "🔄"
	default:
		return "•"
	}
}

func statusColor(statusType StatusType) color.Attribute {
	switch statusType {
	case StatusInfo:
		return color.FgCyan
	case StatusSuccess:
		return color.FgGreen
	case StatusWarning:
		return color.FgYellow
	case StatusError:
		return color.FgRed
	case StatusProgress:
		return color.FgBlue
	default:
		return color.FgWhite
	}
}

func (sr *StatusRenderer) formatMessage(text string, attrs ...color.Attribute) string {
	if !sr.colorEnabled {
		return text
	}

	c := color.New(attrs...)
	c.EnableColor()

	return c.Sprint(text)
}

// formatDetails indents each non-empty detail line.
func (sr *StatusRenderer) formatDetails(details string) string {
	var formattedLines []string

	for _, line := range strings.Split(details, "\n") {
		if line != "" {
			formattedLines = append(formattedLines, "  "+sr.formatMessage(line, color.FgWhite))
		}
	}

	return strings.Join(formattedLines, "\n")
}

// CreateBanner creates a decorative banner for the application.
func CreateBanner(title string, colorEnabled bool) string {
	width := 60
	if len(title)+4 > width {
		width = len(title) + 4
	}

	border := func(s string) string {
		if !colorEnabled {
			return s
		}

		c := color.New(color.FgCyan)
		c.EnableColor()

		return c.Sprint(s)
	}

	padding := (width - len(title) - 2) / 2
	leftPad := strings.Repeat(" ", padding)
	rightPad := strings.Repeat(" ", width-len(title)-padding-2)
	body := leftPad + title + rightPad

	if colorEnabled {
		c := color.New(color.FgWhite, color.Bold)
		c.EnableColor()
		body = c.Sprint(body)
	}

	lines := []string{
		border("╭" + strings.Repeat("─", width-2) + "╮"),
		border("│") + body + border("│"),
		border("╰" + strings.Repeat("─", width-2) + "╯"),
	}

	return strings.Join(lines, "\n")
}
