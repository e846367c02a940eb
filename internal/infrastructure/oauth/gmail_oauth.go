package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/iamsohail/GmailFlightScanner/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// AuthError indicates that no usable credential could be obtained: the
// client secret file is missing, the user declined consent, or the service
// rejected the credentials.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

const (
	callbackAddr = "localhost:8090"
	callbackPath = "/oauth2callback"
)

// GmailOAuth handles OAuth authentication with Gmail
type GmailOAuth struct {
	config    *oauth2.Config
	tokenFile string
	logger    logger.Logger
}

// NewGmailOAuth creates an OAuth handler from the user's client secret
// file. The file is the standard installed-app JSON downloaded from the
// Google Cloud Console.
func NewGmailOAuth(credentialsFile, tokenFile string, logger logger.Logger) (*GmailOAuth, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("cannot read client secret file %s", credentialsFile), Err: err}
	}

	config, err := google.ConfigFromJSON(data, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, &AuthError{Reason: "invalid client secret file", Err: err}
	}
	config.RedirectURL = "http://" + callbackAddr + callbackPath

	return &GmailOAuth{
		config:    config,
		tokenFile: tokenFile,
		logger:    logger,
	}, nil
}

// TokenSource returns a token source backed by the token file. A stored
// token is reused and auto-refreshed; when none exists (or the stored one
// has no refresh token) the interactive consent flow runs. Refreshed
// tokens are written back to the file.
func (o *GmailOAuth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := o.loadToken()
	if err != nil {
		o.logger.Info("No stored token, starting authorization flow", "tokenFile", o.tokenFile)
		token, err = o.authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := o.saveToken(token); err != nil {
			return nil, err
		}
	}

	ts := o.config.TokenSource(ctx, token)

	// Force a refresh now so an expired token fails here, not mid-run.
	fresh, err := ts.Token()
	if err != nil {
		o.logger.Warn("Stored token rejected, starting authorization flow", "error", err)
		token, err = o.authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := o.saveToken(token); err != nil {
			return nil, err
		}
		return o.config.TokenSource(ctx, token), nil
	}

	if fresh.AccessToken != token.AccessToken {
		if err := o.saveToken(fresh); err != nil {
			o.logger.Warn("Failed to persist refreshed token", "error", err)
		}
	}

	return ts, nil
}

// authorize runs the interactive authorization-code flow with a localhost
// callback server.
func (o *GmailOAuth) authorize(ctx context.Context) (*oauth2.Token, error) {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, &AuthError{Reason: "failed to generate state", Err: err}
	}
	state := base64.URLEncoding.EncodeToString(stateBytes)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errChan <- fmt.Errorf("state mismatch in OAuth callback")
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}
		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			errChan <- fmt.Errorf("consent declined: %s", errMsg)
			fmt.Fprintf(w, "Authorization was declined. You can close this window.")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code in callback")
			http.Error(w, "No authorization code received", http.StatusBadRequest)
			return
		}
		codeChan <- code
		fmt.Fprintf(w, "Authentication successful! You can close this window.")
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer server.Shutdown(ctx)

	authURL := o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Open this URL in your browser:\n%s\n", authURL)

	var code string
	select {
	case <-ctx.Done():
		return nil, &AuthError{Reason: "authorization canceled", Err: ctx.Err()}
	case err := <-errChan:
		return nil, &AuthError{Reason: "authorization failed", Err: err}
	case code = <-codeChan:
	}

	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, &AuthError{Reason: "failed to exchange code", Err: err}
	}

	o.logger.Info("Authorization complete")
	return token, nil
}

// loadToken reads the persisted token from the token file.
func (o *GmailOAuth) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(o.tokenFile)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, err
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, fmt.Errorf("stored token expired and has no refresh token")
	}
	return token, nil
}

// saveToken persists the token as JSON.
func (o *GmailOAuth) saveToken(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(o.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	o.logger.Debug("Token saved", "tokenFile", o.tokenFile)
	return nil
}
