package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/rachitverma/careerlens/internal/cache"
	"github.com/rachitverma/careerlens/internal/session"
	"github.com/rachitverma/careerlens/internal/tui"
	"github.com/rachitverma/careerlens/pkg/client"
	"github.com/rachitverma/careerlens/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory supplies local overrides; absence
	// is the normal case.
	_ = godotenv.Load()

	apiURL := os.Getenv("CAREERLENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:5000"
	}

	stateDir, err := session.DefaultDir()
	if err != nil {
		return err
	}
	store := session.New(stateDir)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("careerlens " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(apiURL, store)
		case "logout":
			return runLogout(store)
		}
	}

	sess, err := store.Current()
	if err != nil {
		printSignedOutGreeting()
		return nil
	}

	c := client.New(apiURL, sess.Token)
	// Only force re-login on actual auth failures (401), not transient errors.
	if _, err := c.GetProfile(context.Background()); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			store.Clear() //nolint:errcheck // best-effort cleanup of a dead token
			printSignedOutGreeting()
			return nil
		}
		// Network/server error — launch TUI anyway, it retries internally.
	}

	return launch(c, store, sess)
}

func launch(c *client.Client, store *session.Store, sess domain.Session) error {
	stateDir, err := session.DefaultDir()
	if err != nil {
		return err
	}
	app := tui.NewApp(c, store, sess, store.Identity(), cache.New(stateDir))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func runLogin(apiURL string, store *session.Store) error {
	identifier, password, err := promptCredentials()
	if err != nil {
		return err
	}

	anon := client.New(apiURL, "")
	token, err := anon.Login(context.Background(), identifier, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// The login response only carries the token; role and display
	// identity come from the profile.
	c := client.New(apiURL, token)
	profile, err := c.GetProfile(context.Background())
	if err != nil {
		return fmt.Errorf("load profile after login: %w", err)
	}

	sess := domain.Session{Token: token, Role: profile.DisplayRole()}
	identity := domain.Identity{Name: profile.Username, Email: profile.Email}
	if err := store.Establish(sess, identity); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n\n", profile.Username)
	return launch(c, store, sess)
}

// promptCredentials reads the identifier from stdin and the password
// with echo off. Piped stdin falls back to plain line reads.
func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email or username: ")
	identifier, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("read identifier: %w", err)
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", "", fmt.Errorf("identifier is required")
	}

	fmt.Print("Password: ")
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}
	return identifier, password, nil
}

func runLogout(store *session.Store) error {
	if _, err := store.Current(); err != nil {
		fmt.Println("Already signed out.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}
