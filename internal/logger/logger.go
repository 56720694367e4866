package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu sync.Mutex

	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	tagStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF"))
	statKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	bannerStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 2)
)

func write(style lipgloss.Style, marker, tag, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(os.Stdout, "%s %s %s %s\n",
		timeStyle.Render(time.Now().Format("15:04:05")),
		style.Render(marker),
		tagStyle.Render(fmt.Sprintf("[%s]", tag)),
		style.Render(msg),
	)
}

// Info prints a neutral progress message.
func Info(tag, msg string) { write(infoStyle, "•", tag, msg) }

// Success prints a completion message.
func Success(tag, msg string) { write(successStyle, "✓", tag, msg) }

// Warn prints a recoverable problem.
func Warn(tag, msg string) { write(warnStyle, "!", tag, msg) }

// Error prints a failure.
func Error(tag, msg string) { write(errorStyle, "✗", tag, msg) }

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(os.Stdout, bannerStyle.Render("SpaceTraders Router "+version))
}

// Section prints a heading that groups the Stats lines following it.
func Section(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(os.Stdout, "\n%s\n%s\n", sectionStyle.Render(title), sectionStyle.Render(strings.Repeat("─", len(title))))
}

// Stats prints a single key/value line under the current section.
func Stats(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(os.Stdout, "  %s %v\n", statKeyStyle.Render(fmt.Sprintf("%-18s", key+":")), value)
}
