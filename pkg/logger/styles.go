package logger

import (
	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

const (
	colorTrace = "#7D56F4"
	colorDebug = "#00BFFF"
	colorInfo  = "#00D700"
	colorWarn  = "#FFA500"
	colorError = "#FF4040"
)

// getLogStyles returns the default styles with four-letter level labels and a Trace entry.
func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	label := func(text, color string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(text).
			Bold(true).
			MaxWidth(4).
			Foreground(lipgloss.Color(color))
	}

	styles.Levels[TraceLevel] = label("TRCE", colorTrace)
	styles.Levels[DebugLevel] = label("DEBU", colorDebug)
	styles.Levels[InfoLevel] = label("INFO", colorInfo)
	styles.Levels[WarnLevel] = label("WARN", colorWarn)
	styles.Levels[ErrorLevel] = label("ERRO", colorError)
	styles.Levels[FatalLevel] = label("FATA", colorError)

	return styles
}
