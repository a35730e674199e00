package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// storedToken is the on-disk form of a token session.
type storedToken struct {
	AccessToken  string    `yaml:"access_token"`
	RefreshToken string    `yaml:"refresh_token,omitempty"`
	TokenType    string    `yaml:"token_type,omitempty"`
	Expiry       time.Time `yaml:"expiry,omitempty"`
	Scopes       []string  `yaml:"scopes,omitempty"`
}

func fromOAuth2(tok *oauth2.Token, scopes []string) storedToken {
	return storedToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
}

func (s storedToken) oauth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		Expiry:       s.Expiry,
	}
}

// tokenStore keeps a single token session in a YAML file.
type tokenStore struct {
	fs   afero.Fs
	path string
}

// Load returns the stored token, or nil when there is none yet.
func (s *tokenStore) Load() (*storedToken, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var tok storedToken
	if err := yaml.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return &tok, nil
}

// Save writes tok, readable only by the current user.
func (s *tokenStore) Save(tok storedToken) error {
	data, err := yaml.Marshal(tok)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return afero.WriteFile(s.fs, s.path, data, 0o600)
}
