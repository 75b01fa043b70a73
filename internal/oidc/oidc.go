package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

// Verifier checks Keycloak-issued tokens against the realm's published keys
// and, when a role is set, requires that realm role.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	role     string
}

// NewVerifier discovers the provider at issuer. An empty clientID skips the
// audience check, which Keycloak access tokens usually fail.
func NewVerifier(ctx context.Context, issuer, clientID, role string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	cfg := &oidc.Config{ClientID: clientID, SkipClientIDCheck: clientID == ""}
	return &Verifier{verifier: provider.Verifier(cfg), role: role}, nil
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := requireRole(idToken, v.role); err != nil {
		return nil, err
	}
	return idToken, nil
}

type realmAccess struct {
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

func requireRole(tok middleware.Token, role string) error {
	if role == "" {
		return nil
	}
	var ra realmAccess
	if err := tok.Claims(&ra); err != nil {
		return err
	}
	for _, r := range ra.RealmAccess.Roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("token lacks realm role %q", role)
}
