// Package config loads and defaults the server's startup configuration, per
// spec.md §6: a file of KEY=VALUE pairs (loaded with godotenv) overridden by
// CLI flags, falling back to built-in defaults with a warning on any
// unparsable numeric value.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"cardroom/internal/logging"
)

// Config is the fully-resolved startup configuration consumed by cmd/server.
type Config struct {
	IP                     string
	Port                   int
	MaxRooms               int
	LogFile                string
	EnableFileLogging      bool
	PlayerTimeoutSeconds   int
	GraceWindowSeconds     int
	HeartbeatCheckInterval int
}

// Defaults returns the built-in fallbacks: port 8080 as in the teacher's
// cmd/server/main.go, but bound to all interfaces (0.0.0.0) rather than
// localhost; the game-specific timeouts are new.
func Defaults() Config {
	return Config{
		IP:                     "0.0.0.0",
		Port:                   8080,
		MaxRooms:               512,
		LogFile:                "",
		EnableFileLogging:      false,
		PlayerTimeoutSeconds:   30,
		GraceWindowSeconds:     60,
		HeartbeatCheckInterval: 5,
	}
}

// Load reads a KEY=VALUE config file (if path is non-empty) on top of the
// defaults. A missing file is not an error — the defaults stand — but a
// present, unreadable file is.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if v, ok := values["ip"]; ok && v != "" {
		cfg.IP = v
	}
	if v, ok := values["port"]; ok {
		cfg.Port = parseIntOr(v, cfg.Port, "port")
	}
	if v, ok := values["max_rooms"]; ok {
		cfg.MaxRooms = parseIntOr(v, cfg.MaxRooms, "max_rooms")
	}
	if v, ok := values["log_file"]; ok {
		cfg.LogFile = v
	}
	if v, ok := values["enable_file_logging"]; ok {
		cfg.EnableFileLogging = parseBoolOr(v, cfg.EnableFileLogging, "enable_file_logging")
	}
	if v, ok := values["player_timeout_seconds"]; ok {
		cfg.PlayerTimeoutSeconds = parseIntOr(v, cfg.PlayerTimeoutSeconds, "player_timeout_seconds")
	}
	if v, ok := values["grace_window_seconds"]; ok {
		cfg.GraceWindowSeconds = parseIntOr(v, cfg.GraceWindowSeconds, "grace_window_seconds")
	}
	if v, ok := values["heartbeat_check_interval"]; ok {
		cfg.HeartbeatCheckInterval = parseIntOr(v, cfg.HeartbeatCheckInterval, "heartbeat_check_interval")
	}

	return cfg, nil
}

func parseIntOr(raw string, fallback int, field string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		logging.ConnManager.Warn("invalid value %q for %s, using default %d", raw, field, fallback)
		return fallback
	}
	return n
}

func parseBoolOr(raw string, fallback bool, field string) bool {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logging.ConnManager.Warn("invalid value %q for %s, using default %t", raw, field, fallback)
		return fallback
	}
	return b
}
