package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"instakit/pkg/oauth"
	"instakit/pkg/tokenstore"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API access tokens",
	Long: `Manage OAuth access tokens.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only fallback)`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate through the browser",
	Long: `Open a Chrome window on the authorization page and capture the
access token from the OAuth redirect. The token never reaches the
redirect host; the final navigation is intercepted and aborted.`,
	Run: runLogin,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Store an access token obtained elsewhere",
	Run:   runToken,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored and who it belongs to",
	Run:   runStatus,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored access token",
	Run:   runLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(tokenCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	client, cfg, err := newClient()
	if err != nil {
		fail(err)
	}

	fmt.Println("Opening browser for authorization...")
	if err := client.Authenticate(context.Background(), &oauth.ChromeSurface{}); err != nil {
		fail(err)
	}

	if err := saveToken(cfg.Client.ClientID, client.AccessToken()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: token obtained but not persisted:", err)
	}
	fmt.Println("Authenticated.")
}

func runToken(cmd *cobra.Command, args []string) {
	_, cfg, err := newClient()
	if err != nil {
		fail(err)
	}

	fmt.Print("Access token: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fail(fmt.Errorf("failed to read token: %w", err))
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		fail(fmt.Errorf("no token entered"))
	}

	if err := saveToken(cfg.Client.ClientID, token); err != nil {
		fail(err)
	}
	fmt.Println("Token stored.")
}

func runStatus(cmd *cobra.Command, args []string) {
	client, cfg, err := newClient()
	if err != nil {
		fail(err)
	}
	if !client.IsAuthenticated() {
		fmt.Println("Not authenticated.")
		return
	}

	user, err := client.Me(context.Background())
	if err != nil {
		fmt.Println("Token stored for client", cfg.Client.ClientID, "but the API rejected it:", err)
		return
	}
	fmt.Printf("Authenticated as %s (%s)\n", user.Username, user.FullName)
}

func runLogout(cmd *cobra.Command, args []string) {
	_, cfg, err := newClient()
	if err != nil {
		fail(err)
	}
	manager, err := tokenstore.NewManager()
	if err != nil {
		fail(err)
	}
	if err := manager.Delete(cfg.Client.ClientID); err != nil {
		if err == tokenstore.ErrNotFound {
			fmt.Println("No stored token.")
			return
		}
		fail(err)
	}
	fmt.Println("Logged out.")
}

func saveToken(profile, token string) error {
	manager, err := tokenstore.NewManager()
	if err != nil {
		return err
	}
	return manager.Save(profile, token)
}
