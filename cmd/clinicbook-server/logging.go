package main

import (
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const serviceName = "clinicbook-server"

func bootstrapLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()
}

func logCommandError(log zerolog.Logger, err error) {
	log.Error().Err(err).Msg("command failed")
}

func newLogger(level, format string) zerolog.Logger {
	var logger zerolog.Logger
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(parseLogLevel(level)).With().Timestamp().Str("service", serviceName).Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// databaseLogDict describes the target database without credentials.
func databaseLogDict(databaseURL string) *zerolog.Event {
	host, port, name := databaseTarget(databaseURL)
	return zerolog.Dict().
		Str("host", host).
		Str("port", port).
		Str("name", name)
}

func databaseTarget(databaseURL string) (host, port, name string) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "invalid", "invalid", "invalid"
	}
	name = strings.TrimPrefix(u.Path, "/")
	host = u.Hostname()
	port = u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return host, port, name
}
