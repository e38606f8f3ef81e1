package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/config"
)

// NewVerifier builds the verifier for cfg. Firebase problems do not stop the
// process: requests then fail with ErrNotConfigured. Outside production demo
// tokens are accepted in front of the real verifier.
func NewVerifier(ctx context.Context, cfg *config.Config, log zerolog.Logger) Verifier {
	base := Unconfigured()
	if cfg.FirebaseProjectID == "" && cfg.FirebaseCredentialsFile == "" {
		log.Warn().Msg("firebase auth not configured; only demo tokens will verify")
	} else if fv, err := NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile); err != nil {
		log.Error().Stack().Err(err).Msg("firebase auth unavailable")
	} else {
		base = fv
	}

	if cfg.IsProduction() || cfg.DemoTokenPrefix == "" {
		return base
	}
	log.Info().Str("prefix", cfg.DemoTokenPrefix).Msg("demo tokens enabled")
	return NewDemoVerifier(cfg.DemoTokenPrefix, base)
}
