package logginghelpers

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	// Level Debug -4
	// outbound calls to timetable services and the database
	LevelReportIO slog.Level = -2
	// Level Info 0
	// Level Warn 4
	// Level Error 8
	// a request could not be served at all
	LevelBrokenProcess slog.Level = 12
)

// ParseLevel accepts the slog names plus "io" and "broken"
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelInfo, nil
	case "io":
		return LevelReportIO, nil
	case "broken":
		return LevelBrokenProcess, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// ReplaceLevelNames prints the custom levels by name
func ReplaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch level {
	case LevelReportIO:
		a.Value = slog.StringValue("IO")
	case LevelBrokenProcess:
		a.Value = slog.StringValue("BROKEN")
	}
	return a
}
