// Package oauth provides OAuth 2.0 utilities for likestats.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

var ErrTokenNotFound = errors.New("token not found")

// LoadConfig reads a Google "installed app" client secret file and returns an
// oauth2 config for read-only YouTube access.
func LoadConfig(credentialsFile, redirectURL string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile) // #nosec G304 -- path comes from local configuration
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsFile, err)
	}

	config, err := google.ConfigFromJSON(data, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file %s: %w", credentialsFile, err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}

	return config, nil
}

type Flow struct {
	config *oauth2.Config
}

func NewFlow(config *oauth2.Config) *Flow {
	return &Flow{config: config}
}

// GenerateAuthURL returns the consent URL and the state it was issued with.
func (f *Flow) GenerateAuthURL() (authURL, state string) {
	state = randomState()
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), state
}

func (f *Flow) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token: %w", err)
	}
	return token, nil
}

// Client returns an HTTP client authorised with token. Refreshed tokens are
// written back to storage under provider.
func (f *Flow) Client(ctx context.Context, token *oauth2.Token, storage *TokenStorage, provider string) *http.Client {
	base := oauth2.ReuseTokenSource(token, f.config.TokenSource(ctx, token))
	return oauth2.NewClient(ctx, NewPersistingTokenSource(base, storage, provider, token))
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("oauth: crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

type TokenStorage struct {
	dir string
}

func NewTokenStorage(dir string) *TokenStorage {
	return &TokenStorage{dir: dir}
}

func (s *TokenStorage) Path(provider string) string {
	return filepath.Join(s.dir, filepath.Base(provider)+"_token.json")
}

func (s *TokenStorage) Save(provider string, token *oauth2.Token) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	return os.WriteFile(s.Path(provider), data, 0600)
}

func (s *TokenStorage) Load(provider string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path(provider)) // #nosec G304 -- provider is sanitized
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// PersistingTokenSource saves every new access token its base source hands
// out, so a refresh survives the process.
type PersistingTokenSource struct {
	base     oauth2.TokenSource
	storage  *TokenStorage
	provider string

	mu   sync.Mutex
	last string
}

func NewPersistingTokenSource(base oauth2.TokenSource, storage *TokenStorage, provider string, current *oauth2.Token) *PersistingTokenSource {
	ts := &PersistingTokenSource{base: base, storage: storage, provider: provider}
	if current != nil {
		ts.last = current.AccessToken
	}
	return ts
}

func (s *PersistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken == s.last || s.storage == nil {
		return token, nil
	}
	if err := s.storage.Save(s.provider, token); err != nil {
		return nil, fmt.Errorf("failed to save refreshed token: %w", err)
	}
	s.last = token.AccessToken

	return token, nil
}
