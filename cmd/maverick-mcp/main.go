package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/appianeng/maverick-mcp/internal/common"
	"github.com/appianeng/maverick-mcp/internal/maverick"
	"github.com/appianeng/maverick-mcp/internal/mcp"
)

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// MaverickConfig holds upstream API settings. The token can also come
// from the MAVERICK_API_TOKEN environment variable.
type MaverickConfig struct {
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Config holds all maverick-mcp configuration.
type Config struct {
	Server   ServerConfig         `toml:"server"`
	Maverick MaverickConfig       `toml:"maverick"`
	Logging  common.LoggingConfig `toml:"logging"`
}

// newDefaultConfig returns a Config with sensible defaults.
func newDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name: "maverick-mcp",
			Port: "4280",
		},
		Maverick: MaverickConfig{
			BaseURL:        maverick.DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/maverick-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// loadConfig loads configuration from a TOML file with defaults and env overrides.
func loadConfig(path string) Config {
	cfg := newDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Fatalf("Failed to read config file %s: %v", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				log.Fatalf("Failed to parse config file %s: %v", path, err)
			}
		}
	}

	// Apply environment overrides
	if u := os.Getenv("MAVERICK_BASE_URL"); u != "" {
		cfg.Maverick.BaseURL = u
	}
	if t := os.Getenv("MAVERICK_API_TOKEN"); t != "" {
		cfg.Maverick.APIToken = t
	}
	if port := os.Getenv("MAVERICK_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if lvl := os.Getenv("MAVERICK_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	return cfg
}

// checkCredentials enforces the startup invariant that a token is
// configured. Without one every upstream call would be rejected, so the
// process refuses to start rather than fail on each tool call.
func checkCredentials(cfg Config, configFile string) error {
	if cfg.Maverick.APIToken == "" {
		return fmt.Errorf("maverick api token is not configured; set maverick.api_token in %s or the MAVERICK_API_TOKEN environment variable", configFile)
	}
	return nil
}

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "maverick-mcp.toml", "Path to config file")
	flag.Parse()

	cfg := loadConfig(*configFile)

	// Load version
	common.LoadVersionFromFile()

	// Setup logging
	logger := common.NewLoggerFromConfig(cfg.Logging)

	if err := checkCredentials(cfg, *configFile); err != nil {
		log.Fatalf("%v", err)
	}

	client := maverick.NewClient(
		cfg.Maverick.BaseURL,
		cfg.Maverick.APIToken,
		time.Duration(cfg.Maverick.TimeoutSeconds)*time.Second,
		logger,
	)
	dispatcher := mcp.NewDispatcher(client, logger)

	// Create MCP server with tool definitions
	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	if err := mcp.RegisterTools(mcpServer, dispatcher, logger); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("base_url", cfg.Maverick.BaseURL).
		Msg("maverick-mcp starting")

	if *stdio {
		// Stdio transport — reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport — listens on configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	log.Printf("Starting MCP Streamable HTTP on :%s", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
