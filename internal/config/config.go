package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paularlott/cli"
)

// Config holds the application configuration
type Config struct {
	DataDir       string
	ListenAddr    string
	APIAuthToken  string
	MCPAuthToken  string
	BlacklistFile string // optional JSON blacklist override

	// Background detection in server mode
	ScanEnabled   bool
	ScanInterval  time.Duration
	RetentionDays int // prune runs older than this; 0 keeps everything

	ConfigFile string // path to the .env file, if one was loaded
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Command-line parameters (passed as opts)
// 2. .env file (if exists)
// 3. Environment variables
// 4. Default values
func Load(opts *Config) *Config {
	cfg := &Config{
		DataDir:       "./data",
		ListenAddr:    ":8080",
		ScanEnabled:   false,
		ScanInterval:  5 * time.Minute,
		RetentionDays: 30,
	}

	applyEnv(cfg, os.Getenv)

	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if values, err := parseEnvFile(envFile); err == nil {
			applyEnv(cfg, func(key string) string { return values[key] })
			cfg.ConfigFile = envFile
		}
	}

	if opts != nil {
		if opts.DataDir != "" {
			cfg.DataDir = opts.DataDir
		}
		if opts.ListenAddr != "" {
			cfg.ListenAddr = opts.ListenAddr
		}
		if opts.APIAuthToken != "" {
			cfg.APIAuthToken = opts.APIAuthToken
		}
		if opts.MCPAuthToken != "" {
			cfg.MCPAuthToken = opts.MCPAuthToken
		}
		if opts.BlacklistFile != "" {
			cfg.BlacklistFile = opts.BlacklistFile
		}
		if opts.ScanEnabled {
			cfg.ScanEnabled = true
		}
		if opts.ScanInterval > 0 {
			cfg.ScanInterval = opts.ScanInterval
		}
		if opts.RetentionDays > 0 {
			cfg.RetentionDays = opts.RetentionDays
		}
	}

	return cfg
}

// applyEnv overlays non-empty values from the lookup onto cfg
func applyEnv(cfg *Config, lookup func(string) string) {
	if v := lookup("CAMGUARD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := lookup("CAMGUARD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := lookup("CAMGUARD_API_TOKEN"); v != "" {
		cfg.APIAuthToken = v
	}
	if v := lookup("CAMGUARD_MCP_TOKEN"); v != "" {
		cfg.MCPAuthToken = v
	}
	if v := lookup("CAMGUARD_BLACKLIST_FILE"); v != "" {
		cfg.BlacklistFile = v
	}
	if v := lookup("CAMGUARD_SCAN_ENABLED"); v != "" {
		cfg.ScanEnabled = v == "true" || v == "1"
	}
	if v := lookup("CAMGUARD_SCAN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScanInterval = d
		}
	}
	if v := lookup("CAMGUARD_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetentionDays = n
		}
	}
}

// parseEnvFile reads KEY=VALUE pairs from a .env file
func parseEnvFile(filename string) (map[string]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")
		values[key] = value
	}

	return values, scanner.Err()
}

// IsAPIAuthEnabled checks if API authentication is configured
func (c *Config) IsAPIAuthEnabled() bool {
	return c.APIAuthToken != ""
}

// IsMCPAuthEnabled checks if MCP authentication is configured
func (c *Config) IsMCPAuthEnabled() bool {
	return c.MCPAuthToken != ""
}

// GetFlags returns the CLI flags shared by commands that load configuration
func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Directory for the detection history database",
			EnvVars: []string{"CAMGUARD_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "Address for the HTTP server to listen on",
			EnvVars: []string{"CAMGUARD_LISTEN_ADDR"},
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "Bearer token required for API requests (empty disables auth)",
			EnvVars: []string{"CAMGUARD_API_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "mcp-token",
			Usage:   "Bearer token required for MCP requests (empty disables auth)",
			EnvVars: []string{"CAMGUARD_MCP_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "blacklist",
			Usage:   "Path to a JSON blacklist file replacing the built-in rules",
			EnvVars: []string{"CAMGUARD_BLACKLIST_FILE"},
		},
		&cli.BoolFlag{
			Name:    "scan",
			Usage:   "Enable periodic background detection",
			EnvVars: []string{"CAMGUARD_SCAN_ENABLED"},
		},
		&cli.StringFlag{
			Name:    "scan-interval",
			Usage:   "Interval between background detection runs (e.g. 5m)",
			EnvVars: []string{"CAMGUARD_SCAN_INTERVAL"},
		},
		&cli.IntFlag{
			Name:    "retention-days",
			Usage:   "Days of detection history to keep (0 keeps everything)",
			EnvVars: []string{"CAMGUARD_RETENTION_DAYS"},
		},
	}
}

// FromCommand builds config opts from parsed CLI flags
func FromCommand(cmd *cli.Command) *Config {
	opts := &Config{
		DataDir:       cmd.GetString("data-dir"),
		ListenAddr:    cmd.GetString("listen"),
		APIAuthToken:  cmd.GetString("api-token"),
		MCPAuthToken:  cmd.GetString("mcp-token"),
		BlacklistFile: cmd.GetString("blacklist"),
		ScanEnabled:   cmd.GetBool("scan"),
		RetentionDays: cmd.GetInt("retention-days"),
	}
	if v := cmd.GetString("scan-interval"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			opts.ScanInterval = d
		}
	}
	return opts
}
