package profileapi

import (
	"context"
	"strings"
)

// CredentialProvider supplies the bearer token sent with every request
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	token := strings.TrimSpace(string(t))
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}
