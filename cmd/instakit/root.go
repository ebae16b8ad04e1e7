package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"instakit/pkg/config"
	"instakit/pkg/instagram"
	"instakit/pkg/logger"
	"instakit/pkg/tokenstore"
)

var (
	version   = "1.0.0"
	gitCommit = "unknown"

	// Global flags
	cfgFile         string
	flagClientID    string
	flagRedirectURI string
	flagScopes      string
	flagLogLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "instakit",
	Short: "A typed command-line client for the Instagram REST API",
	Long: `instakit talks to the Instagram REST API with a registered
application identity. Authenticate once with "instakit auth login"
(browser flow) or "instakit auth token" (manual entry); the token is
stored in the system keychain or an encrypted file and reused by every
query command.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, gitCommit),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.instakit.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "registered application client ID")
	rootCmd.PersistentFlags().StringVar(&flagRedirectURI, "redirect-uri", "", "registered OAuth redirect URI")
	rootCmd.PersistentFlags().StringVar(&flagScopes, "scopes", "", "comma-separated scopes to request")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`instakit {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile, map[string]interface{}{
		"client-id":    flagClientID,
		"redirect-uri": flagRedirectURI,
		"scopes":       flagScopes,
		"log-level":    flagLogLevel,
	})
}

// newClient assembles a client from configuration and, when a stored
// token exists for this client ID, installs it.
func newClient() (*instagram.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
	})
	if err != nil {
		return nil, nil, err
	}

	client, err := instagram.NewClient(cfg.ClientConfiguration(), &http.Client{Timeout: cfg.HTTP.Timeout}, log)
	if err != nil {
		return nil, nil, err
	}

	if manager, err := tokenstore.NewManager(); err == nil {
		if token, err := manager.Load(cfg.Client.ClientID); err == nil {
			client.SetAccessToken(token)
		}
	}
	return client, cfg, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
