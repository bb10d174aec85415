package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/warden/pkg/jwtx"
)

// InitKeys generates the in-memory Ed25519 signing keys. Tokens issued by a
// previous process stop verifying after a restart.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		NumKeys:  cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("generate signing keys: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		slog.Int("num_keys", keys.NumSigners()),
		slog.String("issuer", cfg.Issuer),
	)
	logger.Warn("tokens issued before this start no longer verify")
	return keys, nil
}
