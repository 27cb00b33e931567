package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/wallet/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	level log.Level
	icon  string
	color lipgloss.AdaptiveColor
}

var levelStyles = []levelStyle{
	{log.ErrorLevel, "❌", lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}},
	{log.InfoLevel, "ℹ️", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	{log.WarnLevel, "⚠️", lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}},
	{log.DebugLevel, "🐛", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}},
}

// accent colours keys that carry ids and metadata.
var accent = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}

func styles() *log.Styles {
	s := log.DefaultStyles()
	for _, ls := range levelStyles {
		s.Levels[ls.level] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
		name := ls.level.String()
		s.Keys[name] = lipgloss.NewStyle().Foreground(ls.color)
		s.Values[name] = lipgloss.NewStyle().Bold(true)
	}
	for _, key := range []string{"prefix", "caller", "time", "username", "walletID", "transactionID"} {
		s.Keys[key] = lipgloss.NewStyle().Foreground(accent)
		s.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	s.Keys["error"] = lipgloss.NewStyle().Foreground(levelStyles[0].color)
	s.Values["error"] = lipgloss.NewStyle().Bold(true)
	return s
}

// SetupLogger builds the charmbracelet handler described by cfg, writing
// to w (stdout when nil), and installs it as the slog default.
func SetupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text", TimeFormat: "15:04:05", Prefix: "[wallet]"}
	}
	if w == nil {
		w = os.Stdout
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
