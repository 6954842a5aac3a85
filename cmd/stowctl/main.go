// stowctl is a command line client for a stow inventory server. It moves
// whole datasets in and out of a server as zip archives of CSV files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/stow/internal/config"
	"github.com/JonMunkholm/stow/internal/gateway"
	"github.com/JonMunkholm/stow/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagAPIKey string
)

var rootCmd = &cobra.Command{
	Use:   "stowctl",
	Short: "Inventory data interchange client",
	Long: `stowctl talks to a stow inventory server over HTTP.

It can download the full dataset as a portable zip archive (export) and
replay such an archive into a server (import), reconciling entities that
already exist at the destination.

The server address comes from --server, the GATEWAY_BASE_URL environment
variable, or a .env file in the working directory.`,
	SilenceUsage: true,
}

// newGateway builds the HTTP client for the target server from flags and
// environment configuration.
func newGateway() (*gateway.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	baseURL := cfg.Gateway.BaseURL
	if flagServer != "" {
		baseURL = flagServer
	}
	if baseURL == "" {
		return nil, fmt.Errorf("no server configured: pass --server or set GATEWAY_BASE_URL")
	}
	apiKey := cfg.Gateway.APIKey
	if flagAPIKey != "" {
		apiKey = flagAPIKey
	}
	return gateway.NewClient(baseURL, apiKey, gateway.WithTimeout(cfg.Gateway.Timeout)), nil
}

func main() {
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "base URL of the stow server")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key for the stow server")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
