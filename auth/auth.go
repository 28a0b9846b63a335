// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/pem"
	"errors"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// SpreadsheetsScope grants read/write access to spreadsheets
const SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

var (
	ErrMissingEmail      = errors.New("service account email is required")
	ErrMissingPrivateKey = errors.New("service account private key is required")
	ErrInvalidPrivateKey = errors.New("service account private key is not PEM encoded")
)

// ServiceAccount holds the credential used to reach the spreadsheet
type ServiceAccount struct {
	Email      string
	PrivateKey string
}

// NormalizePrivateKey accepts keys pasted into env files with escaped
// newlines ("\n" as two characters) or wrapped in quotes
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `"'`)
	if strings.Contains(key, `\n`) {
		key = strings.ReplaceAll(key, `\n`, "\n")
	}
	return strings.TrimSpace(key)
}

// Validate checks that both fields are present and the key decodes as PEM
func (sa ServiceAccount) Validate() error {
	if strings.TrimSpace(sa.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(sa.PrivateKey) == "" {
		return ErrMissingPrivateKey
	}
	if block, _ := pem.Decode([]byte(NormalizePrivateKey(sa.PrivateKey))); block == nil {
		return ErrInvalidPrivateKey
	}
	return nil
}

// JWTConfig builds the two-legged OAuth config for the service account
func (sa ServiceAccount) JWTConfig(scopes ...string) *jwt.Config {
	if len(scopes) == 0 {
		scopes = []string{SpreadsheetsScope}
	}
	return &jwt.Config{
		Email:      sa.Email,
		PrivateKey: []byte(NormalizePrivateKey(sa.PrivateKey)),
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}
}

// TokenSource returns a caching token source for the service account
func (sa ServiceAccount) TokenSource(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	if err := sa.Validate(); err != nil {
		return nil, err
	}
	return sa.JWTConfig(scopes...).TokenSource(ctx), nil
}

// Presence reports "Set" or "Missing" without echoing the value
func Presence(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Missing"
	}
	return "Set"
}
