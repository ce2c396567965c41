package session_test

import (
	"time"

	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
)

func jwtFor(id domain.Identity) (string, error) {
	issuer, err := auth.NewIssuer("session-test", time.Hour)
	if err != nil {
		return "", err
	}

	token, _, err := issuer.Issue(id)
	return token, err
}
