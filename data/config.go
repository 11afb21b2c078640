package data

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	SourceMemory   = "memory"
	SourcePostgres = "postgres"
	SourceRemote   = "remote"
)

// Config is read from the environment after the .env file is loaded
type Config struct {
	Port               int
	AllowedOrigins     []string
	TimetableSource    string
	TimetableRemoteURL string
	RequestSource      string
	LogLevel           string
	LogFile            string
}

func LoadConfig() (Config, error) {
	LoadEnv()
	c := Config{
		Port:               3000,
		AllowedOrigins:     []string{"http://localhost:3000"},
		TimetableSource:    envOr("TIMETABLE_SOURCE", SourceMemory),
		TimetableRemoteURL: os.Getenv("TIMETABLE_REMOTE_URL"),
		RequestSource:      envOr("REQUEST_SOURCE", SourceMemory),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		LogFile:            os.Getenv("LOG_FILE"),
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 {
			return c, fmt.Errorf("invalid PORT %q", port)
		}
		c.Port = p
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}

	switch c.TimetableSource {
	case SourceMemory, SourcePostgres:
	case SourceRemote:
		if c.TimetableRemoteURL == "" {
			return c, fmt.Errorf("TIMETABLE_REMOTE_URL is required for the remote timetable source")
		}
	default:
		return c, fmt.Errorf("unknown TIMETABLE_SOURCE %q", c.TimetableSource)
	}
	switch c.RequestSource {
	case SourceMemory, SourcePostgres:
	default:
		return c, fmt.Errorf("unknown REQUEST_SOURCE %q", c.RequestSource)
	}
	return c, nil
}

// NeedsDatabase is true when either store lives in postgres
func (c Config) NeedsDatabase() bool {
	return c.TimetableSource == SourcePostgres || c.RequestSource == SourcePostgres
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
