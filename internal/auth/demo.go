package auth

import (
	"context"
	"strings"
)

// DemoIdentity is returned for demo tokens.
var DemoIdentity = Identity{
	UID:   "demo_user",
	Email: "demo@tradejournal.com",
	Name:  "Usuario Demo",
	Demo:  true,
}

// DemoVerifier accepts any token carrying its prefix as the demo identity and
// hands everything else to next. It must never be installed in production.
type DemoVerifier struct {
	prefix string
	next   Verifier
}

func NewDemoVerifier(prefix string, next Verifier) *DemoVerifier {
	return &DemoVerifier{prefix: prefix, next: next}
}

func (d *DemoVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if d.prefix != "" && strings.HasPrefix(token, d.prefix) {
		return DemoIdentity, nil
	}
	if d.next == nil {
		return Identity{}, ErrNotConfigured
	}
	return d.next.Verify(ctx, token)
}

type unconfigured struct{}

func (unconfigured) Verify(context.Context, string) (Identity, error) {
	return Identity{}, ErrNotConfigured
}

// Unconfigured rejects every token with ErrNotConfigured.
func Unconfigured() Verifier { return unconfigured{} }
