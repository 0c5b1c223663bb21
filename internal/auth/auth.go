// Package auth provides Google OAuth2 authentication for jobtrack.
//
// It exchanges a client secret file (credentials.json) plus either a cached
// token.json or a first-run interactive consent for API access scoped to
// read-only Gmail and read-write Sheets.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Scopes requested during consent: read mail, write spreadsheets.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	sheets.SpreadsheetsScope,
}

// Services bundles the two authenticated API clients the pipeline needs.
type Services struct {
	Gmail  *gmail.Service
	Sheets *sheets.Service
}

// LoadServices authenticates and constructs the Gmail and Sheets services.
// Both share one HTTP client and token source.
func LoadServices(ctx context.Context, credentialsPath, tokenPath string) (*Services, error) {
	client, err := getClient(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, fmt.Errorf("get oauth client: %w", err)
	}

	gmailSvc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Services{Gmail: gmailSvc, Sheets: sheetsSvc}, nil
}

// getClient returns an authenticated HTTP client, running the interactive
// consent flow when no cached token can be loaded or refreshed.
func getClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	config, err := loadOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(tokenPath)
	if err == nil {
		ts := config.TokenSource(ctx, token)
		fresh, refreshErr := ts.Token()
		if refreshErr == nil {
			if fresh.AccessToken != token.AccessToken {
				if saveErr := saveToken(tokenPath, fresh); saveErr != nil {
					fmt.Fprintf(os.Stderr, "warning: could not save refreshed token: %v\n", saveErr)
				}
			}
			return oauth2.NewClient(ctx, ts), nil
		}
		// A dead refresh token falls through to full re-authentication.
		fmt.Fprintf(os.Stderr, "warning: token refresh failed: %v\n", refreshErr)
	}

	token, err = tokenFromWeb(ctx, config)
	if err != nil {
		return nil, err
	}
	if saveErr := saveToken(tokenPath, token); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save token to %s: %v\n", tokenPath, saveErr)
	}

	return config.Client(ctx, token), nil
}

// loadOAuthConfig reads credentials.json and returns an OAuth2 config.
func loadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials from %s: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return config, nil
}

// tokenFromWeb runs the interactive consent flow: print the auth URL,
// read the authorization code from stdin, exchange it for a token.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// tokenFromFile loads a cached oauth2 token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("parse token from %s: %w", path, err)
	}
	return token, nil
}

// saveToken writes the token back for reuse on the next run.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
