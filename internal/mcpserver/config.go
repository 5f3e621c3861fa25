package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// BaseDir is the consolidate tool's base_dir when the call omits it.
	BaseDir string
	// AllowWrite permits tools to write output files.
	AllowWrite bool
	// MaxInlineSize caps inline content in bytes.
	MaxInlineSize int64
	// FixLimit is the default number of fixes returned per call.
	FixLimit int
	// MaxLimit caps any requested limit.
	MaxLimit int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASCONSOLIDATE_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		BaseDir:       os.Getenv("OASCONSOLIDATE_MCP_BASE_DIR"),
		AllowWrite:    envBool("OASCONSOLIDATE_MCP_ALLOW_WRITE", true),
		MaxInlineSize: int64(envInt("OASCONSOLIDATE_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		FixLimit:      envInt("OASCONSOLIDATE_MCP_FIX_LIMIT", 100),
		MaxLimit:      envInt("OASCONSOLIDATE_MCP_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
