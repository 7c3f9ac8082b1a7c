// Package gmail exports labeled mailbox messages into the four-column CSV
// schema consumed by the cleaner.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail API service for read-only export.
type Client struct {
	svc *gmail.Service
}

// NewClient builds a client from an OAuth credentials file, reusing a cached
// token when one exists and running the loopback authorization flow otherwise.
func NewClient(ctx context.Context, credsPath, tokenPath string) (*Client, error) {
	b, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	// must match the OAuth client's registered redirect
	config.RedirectURL = "http://localhost:8081/oauth2callback"

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("authorize: %w", err)
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, fmt.Errorf("cache token: %w", err)
		}
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("new gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// tokenFromWeb runs a lightweight local server to receive the authorization
// code from the browser redirect.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":8081", Handler: mux}
	mux.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Authorization successful! You can close this window.")
		deliverCode(codeCh, r.URL.Query().Get("code"))
		go srv.Shutdown(context.Background())
	})
	go func() {
		_ = srv.ListenAndServe()
	}()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser:\n%v\n", authURL)

	select {
	case code := <-codeCh:
		return config.Exchange(ctx, code)
	case <-ctx.Done():
		_ = srv.Shutdown(context.Background())
		return nil, ctx.Err()
	}
}

// deliverCode hands the authorization code to the waiting flow. The send
// never blocks, so a late or duplicate browser redirect cannot hang its
// handler after the flow has given up.
func deliverCode(ch chan<- string, code string) {
	select {
	case ch <- code:
	default:
	}
}
